package driver

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// operation records one file rewrite so it can be rolled back —
// core.TransactionOperation narrowed to the single "modify" kind a refactor
// run ever performs (it never creates or deletes files).
type operation struct {
	FilePath   string    `json:"file_path"`
	BackupPath string    `json:"backup_path"`
	Checksum   string    `json:"checksum"`
	Timestamp  time.Time `json:"timestamp"`
	Completed  bool      `json:"completed"`
	Error      string    `json:"error,omitempty"`
}

// transactionLog is the durable record of one Run — core.TransactionLog.
type transactionLog struct {
	ID          string      `json:"id"`
	Started     time.Time   `json:"started"`
	Completed   time.Time   `json:"completed"`
	Operations  []operation `json:"operations"`
	Status      string      `json:"status"` // pending, committed, rolled_back
	Description string      `json:"description"`
}

// transactionManager logs every file write a Run performs under logDir and
// can roll the whole batch back to its pre-run state — core.TransactionManager.
type transactionManager struct {
	logDir string
	tx     *transactionLog
	writer *AtomicWriter
	mu     sync.Mutex
}

func newTransactionManager(logDir string, writer *AtomicWriter) *transactionManager {
	os.MkdirAll(logDir, 0o755)
	return &transactionManager{logDir: logDir, writer: writer}
}

func (tm *transactionManager) begin(description string) (*transactionLog, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if tm.tx != nil {
		return nil, fmt.Errorf("driver: transaction already in progress: %s", tm.tx.ID)
	}

	tx := &transactionLog{
		ID:          newTransactionID(),
		Started:     time.Now(),
		Operations:  make([]operation, 0),
		Status:      "pending",
		Description: description,
	}
	tm.tx = tx
	if err := tm.write(tx); err != nil {
		tm.tx = nil
		return nil, fmt.Errorf("driver: failed to write transaction log: %w", err)
	}
	return tx, nil
}

func (tm *transactionManager) recordModify(filePath string) (*operation, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if tm.tx == nil {
		return nil, fmt.Errorf("driver: no active transaction")
	}

	op := operation{FilePath: filePath, Timestamp: time.Now()}
	if _, err := os.Stat(filePath); err == nil {
		checksum, err := checksumFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("driver: failed to checksum %s: %w", filePath, err)
		}
		op.Checksum = checksum

		backupPath := tm.backupPath(filePath)
		if err := backupFile(filePath, backupPath); err != nil {
			return nil, fmt.Errorf("driver: failed to back up %s: %w", filePath, err)
		}
		op.BackupPath = backupPath
	}

	tm.tx.Operations = append(tm.tx.Operations, op)
	opPtr := &tm.tx.Operations[len(tm.tx.Operations)-1]
	if err := tm.write(tm.tx); err != nil {
		return nil, fmt.Errorf("driver: failed to update transaction log: %w", err)
	}
	return opPtr, nil
}

func (tm *transactionManager) complete(filePath string, cause error) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if tm.tx == nil {
		return fmt.Errorf("driver: no active transaction")
	}
	for i := range tm.tx.Operations {
		op := &tm.tx.Operations[i]
		if op.FilePath == filePath && !op.Completed {
			op.Completed = true
			if cause != nil {
				op.Error = cause.Error()
			}
			return tm.write(tm.tx)
		}
	}
	return fmt.Errorf("driver: no pending operation for %s", filePath)
}

func (tm *transactionManager) commit() error {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if tm.tx == nil {
		return fmt.Errorf("driver: no active transaction")
	}
	for _, op := range tm.tx.Operations {
		if !op.Completed || op.Error != "" {
			return fmt.Errorf("driver: cannot commit a transaction with failed operations")
		}
	}
	tm.tx.Status = "committed"
	tm.tx.Completed = time.Now()
	err := tm.write(tm.tx)
	tm.tx = nil
	return err
}

func (tm *transactionManager) rollback() error {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if tm.tx == nil {
		return fmt.Errorf("driver: no active transaction")
	}

	var failures []string
	for i := len(tm.tx.Operations) - 1; i >= 0; i-- {
		op := tm.tx.Operations[i]
		if !op.Completed {
			continue
		}
		if err := tm.rollbackOne(op); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", op.FilePath, err))
		}
	}

	tm.tx.Status = "rolled_back"
	tm.tx.Completed = time.Now()
	if err := tm.write(tm.tx); err != nil {
		failures = append(failures, fmt.Sprintf("transaction log: %v", err))
	}
	tm.tx = nil

	if len(failures) > 0 {
		return fmt.Errorf("driver: rollback completed with errors: %v", failures)
	}
	return nil
}

func (tm *transactionManager) rollbackOne(op operation) error {
	if op.BackupPath == "" {
		return fmt.Errorf("no backup recorded")
	}
	content, err := os.ReadFile(op.BackupPath)
	if err != nil {
		return fmt.Errorf("reading backup: %w", err)
	}
	return tm.writer.WriteFile(op.FilePath, string(content))
}

func (tm *transactionManager) write(tx *transactionLog) error {
	data, err := json.MarshalIndent(tx, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(tm.logDir, tx.ID+".json"), data, 0o644)
}

func (tm *transactionManager) backupPath(filePath string) string {
	ts := time.Now().UTC().Format("20060102-150405.000000000")
	txID := "unknown"
	if tm.tx != nil {
		txID = tm.tx.ID
	}
	dir := filepath.Dir(filePath)
	name := filepath.Base(filePath)
	return filepath.Join(dir, fmt.Sprintf(".refract-backup-%s-%s-%s-%s", name, txID, ts, randomHex(8)))
}

func backupFile(originalPath, backupPath string) error {
	info, err := os.Stat(originalPath)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(originalPath)
	if err != nil {
		return err
	}
	mode := info.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	if err := os.WriteFile(backupPath, content, mode); err != nil {
		return err
	}
	return os.Chmod(backupPath, mode)
}

func checksumFile(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(content)
	return fmt.Sprintf("%x", hash), nil
}

func newTransactionID() string {
	return fmt.Sprintf("tx_%d_%s_%d", time.Now().UTC().UnixNano(), randomHex(8), os.Getpid())
}

func randomHex(length int) string {
	if length <= 0 {
		length = 8
	}
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%x", time.Now().UTC().UnixNano())
	}
	return hex.EncodeToString(buf)
}
