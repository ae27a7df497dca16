package arsenic

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/google/uuid"
)

// Job describes one file to encrypt or decrypt. A Job is immutable once
// submitted; the orchestrator never mutates or re-reads it from a shared
// config after dispatch.
type Job struct {
	Mode                    Mode
	InputPath               string
	OutputPath              string
	Passphrase              *SecretBytes
	KDFParams               KDFParams
	Armor                   bool
	DeleteOriginalOnSuccess bool
}

// JobHandle is returned by Submit and lets the caller poll progress, request
// cancellation, and wait for the final outcome.
type JobHandle struct {
	id         uuid.UUID
	cancelled  atomic.Bool
	progressCh chan int
	done       chan struct{}
	err        error
}

// ID returns the job's unique identifier.
func (h *JobHandle) ID() string { return h.id.String() }

// Cancel requests cooperative cancellation. Idempotent; safe to call more
// than once or after the job has already finished.
func (h *JobHandle) Cancel() { h.cancelled.Store(true) }

// Progress yields integers in [0, 100], monotonically non-decreasing until
// completion. Delivery is lossy-most-recent: a slow reader sees the latest
// value, never a backlog of stale ones.
func (h *JobHandle) Progress() <-chan int { return h.progressCh }

// Await blocks until the job reaches a terminal state and returns its
// result. err carries an *Error with one of the stable ErrorCode values.
func (h *JobHandle) Await() error {
	<-h.done
	return h.err
}

func (h *JobHandle) sendProgress(pct int) {
	select {
	case h.progressCh <- pct:
	default:
		select {
		case <-h.progressCh:
		default:
		}
		select {
		case h.progressCh <- pct:
		default:
		}
	}
}

// Orchestrator drives one or more Jobs on a single dedicated worker: jobs
// run sequentially, one file at a time, in submission order. It is not a
// general scheduler.
type Orchestrator struct {
	queue chan *queuedJob
}

type queuedJob struct {
	job    Job
	handle *JobHandle
}

// NewOrchestrator starts the worker goroutine and returns a ready
// Orchestrator.
func NewOrchestrator() *Orchestrator {
	o := &Orchestrator{queue: make(chan *queuedJob, 64)}
	go o.run()
	return o
}

func (o *Orchestrator) run() {
	for qj := range o.queue {
		qj.handle.err = runJob(qj.job, qj.handle)
		close(qj.handle.done)
	}
}

// Submit enqueues job and returns immediately with a handle; the job runs
// when the worker reaches it.
func (o *Orchestrator) Submit(job Job) (*JobHandle, error) {
	handle := &JobHandle{
		id:         uuid.New(),
		progressCh: make(chan int, 1),
		done:       make(chan struct{}),
	}
	o.queue <- &queuedJob{job: job, handle: handle}
	return handle, nil
}

// SubmitBatch enqueues every job in order and returns their handles. The
// worker still processes them one file at a time; this is sugar over
// calling Submit in a loop, grounded on the same "encrypt/decrypt every file
// under a path" batch operations the broader ecosystem exposes.
func (o *Orchestrator) SubmitBatch(jobs []Job) []*JobHandle {
	handles := make([]*JobHandle, 0, len(jobs))
	for _, j := range jobs {
		h, _ := o.Submit(j)
		handles = append(handles, h)
	}
	return handles
}

// runJob dispatches to the encrypt or decrypt path and guarantees the job's
// passphrase is zeroized on every exit, matching the Job invariant that it
// is zeroized whether the job succeeds, fails, or is cancelled.
func runJob(job Job, handle *JobHandle) error {
	defer job.Passphrase.Zero()

	if err := validatePassphrase(job.Passphrase.Bytes()); err != nil {
		return err
	}

	var err error
	switch job.Mode {
	case Encrypt:
		err = runEncrypt(job, handle)
	case Decrypt:
		err = runDecrypt(job, handle)
	default:
		err = NewError(InvalidCryptoboxInput, job.InputPath, nil)
	}

	if err != nil {
		return err
	}
	if job.DeleteOriginalOnSuccess {
		os.Remove(job.InputPath)
	}
	return nil
}

// preflightSource checks the source pre-conditions shared by both
// directions: it must exist and be readable.
func preflightSource(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewError(SrcNotFound, path, err)
		}
		return nil, NewError(SrcCannotOpenRead, path, err)
	}
	return f, nil
}

// createDestination atomically creates the destination file, refusing to
// overwrite an existing one. Using O_EXCL makes the check-then-create
// atomic rather than racing a separate os.Stat.
func createDestination(path string) (*os.File, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, NewError(DesFileExists, path, nil)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return nil, NewError(DesFileExists, path, nil)
		}
		return nil, NewError(DesCannotOpenWrite, path, err)
	}
	return f, nil
}

// runEncrypt implements the container codec's write path (4.E) under the
// orchestrator's cancellation and progress contract (4.F). The in-flight
// plaintext chunk buffer is a SecretBytes, zeroed after each chunk is
// sealed.
func runEncrypt(job Job, handle *JobHandle) error {
	in, err := preflightSource(job.InputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	stat, err := in.Stat()
	if err != nil {
		return NewError(SrcCannotOpenRead, job.InputPath, err)
	}
	totalSize := stat.Size()

	header, salt, nonces, err := newHeader(job.KDFParams, filepath.Base(job.InputPath))
	if err != nil {
		return err
	}

	keys, err := deriveKeys(job.Passphrase.Bytes(), salt, job.KDFParams)
	if err != nil {
		return err
	}
	defer keys.Zero()

	eng, err := newEngine(keys, nonces)
	if err != nil {
		return err
	}

	out, err := createDestination(job.OutputPath)
	if err != nil {
		return err
	}
	succeeded := false
	defer func() {
		out.Close()
		if !succeeded {
			os.Remove(job.OutputPath)
		}
	}()

	var sink io.Writer = out
	var armorBuf *bytes.Buffer
	if job.Armor {
		armorBuf = &bytes.Buffer{}
		sink = armorBuf
	}

	if _, err := header.WriteTo(sink); err != nil {
		return NewError(DesCannotOpenWrite, job.OutputPath, err)
	}

	plainBuf := NewSecretBytesSize(plaintextChunkSize)
	defer plainBuf.Zero()

	var readTotal int64
	for {
		if handle.cancelled.Load() {
			return cancelCleanup(job.OutputPath)
		}

		n, readErr := io.ReadFull(in, plainBuf.Bytes())
		if n > 0 {
			chunk := plainBuf.Bytes()[:n]
			ciphertext := eng.seal(chunk)
			zeroBytes(chunk)
			if err := writeFrame(sink, ciphertext); err != nil {
				return NewError(DesCannotOpenWrite, job.OutputPath, err)
			}
			readTotal += int64(n)
			if totalSize > 0 {
				handle.sendProgress(int(readTotal * 100 / totalSize))
			}
		}
		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			break
		}
		if readErr != nil {
			return NewError(SrcCannotOpenRead, job.InputPath, readErr)
		}
	}

	if err := writeSentinel(sink); err != nil {
		return NewError(DesCannotOpenWrite, job.OutputPath, err)
	}

	if job.Armor {
		if _, err := out.Write(armor(armorBuf.Bytes())); err != nil {
			return NewError(DesCannotOpenWrite, job.OutputPath, err)
		}
	}

	handle.sendProgress(100)
	succeeded = true
	return nil
}

// runDecrypt implements the container codec's read path (4.E). No plaintext
// byte reaches the destination until the chunk producing it has passed
// every cascade stage's authentication (stream-on-verify): Open only ever
// returns data once it has verified it. Each decrypted chunk is held in a
// SecretBytes and zeroed immediately after it is written out.
func runDecrypt(job Job, handle *JobHandle) error {
	in, err := preflightSource(job.InputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	source, err := decryptSource(in)
	if err != nil {
		return err
	}

	header, err := ReadHeader(source)
	if err != nil {
		return err
	}

	keys, err := deriveKeys(job.Passphrase.Bytes(), header.Salt, header.KDFParams)
	if err != nil {
		return err
	}
	defer keys.Zero()

	nonces, err := newTripleNonce(header.NonceSeed)
	if err != nil {
		return err
	}
	eng, err := newEngine(keys, nonces)
	if err != nil {
		return err
	}

	out, err := createDestination(job.OutputPath)
	if err != nil {
		return err
	}
	succeeded := false
	defer func() {
		out.Close()
		if !succeeded {
			os.Remove(job.OutputPath)
		}
	}()

	var written int64
	for {
		if handle.cancelled.Load() {
			return cancelCleanup(job.OutputPath)
		}

		ciphertext, ok, err := readFrame(source)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		rawPlaintext, err := eng.open(ciphertext)
		if err != nil {
			return err
		}
		plaintext := NewSecretBytes(rawPlaintext)
		_, writeErr := out.Write(plaintext.Bytes())
		written += int64(plaintext.Len())
		plaintext.Zero()
		if writeErr != nil {
			return NewError(DesCannotOpenWrite, job.OutputPath, writeErr)
		}
		handle.sendProgress(50) // unknown total size ahead of decrypt; best-effort signal
	}

	handle.sendProgress(100)
	succeeded = true
	return nil
}

// decryptSource peeks the input for the armor envelope's leading dash
// sequence and, if present, reads and unwraps the whole envelope; otherwise
// it returns a streaming reader directly over the file.
func decryptSource(in *os.File) (io.Reader, error) {
	br := bufio.NewReader(in)
	peek, _ := br.Peek(11)
	if !isArmored(peek) {
		return br, nil
	}

	rest, err := io.ReadAll(br)
	if err != nil {
		return nil, NewError(SrcHeaderReadError, "", err)
	}
	binary, err := unarmor(rest)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(binary), nil
}

// cancelCleanup tears down a partially written destination on observed
// cancellation: close is handled by the caller's defer, this only removes
// the file and reports the stable code.
func cancelCleanup(outputPath string) error {
	os.Remove(outputPath)
	return NewError(AbortedByUser, outputPath, nil)
}

// VerifyContainer decrypts path to a discard sink using passphrase, proving
// the passphrase is correct and every chunk authenticates, without
// restoring any plaintext to disk.
func VerifyContainer(path string, passphrase *SecretBytes) error {
	defer passphrase.Zero()

	in, err := preflightSource(path)
	if err != nil {
		return err
	}
	defer in.Close()

	source, err := decryptSource(in)
	if err != nil {
		return err
	}
	header, err := ReadHeader(source)
	if err != nil {
		return err
	}
	keys, err := deriveKeys(passphrase.Bytes(), header.Salt, header.KDFParams)
	if err != nil {
		return err
	}
	defer keys.Zero()

	nonces, err := newTripleNonce(header.NonceSeed)
	if err != nil {
		return err
	}
	eng, err := newEngine(keys, nonces)
	if err != nil {
		return err
	}

	for {
		ciphertext, ok, err := readFrame(source)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if _, err := eng.open(ciphertext); err != nil {
			return err
		}
	}
	return nil
}
