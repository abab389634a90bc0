package driver

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/oxhq/refract/internal/xerrors"
)

// applyAcceptedHunks reconstructs a file's new contents from only the
// hunks the reviewer accepted. When every hunk was accepted, fullRewrite
// already is the answer and no external tool is needed. Otherwise the
// accepted subset is reassembled into a patch document and handed to the
// system `patch` utility against the original content — mirroring
// bowler.tool.BowlerTool.apply_hunks, which shells out to `patch` for the
// same reason: reassembling a partial unified diff by hand is exactly
// what that tool already does correctly.
func applyAcceptedHunks(filename, original, fullRewrite string, accepted, all []xerrors.Hunk) (string, error) {
	if len(accepted) == len(all) {
		return fullRewrite, nil
	}
	if len(accepted) == 0 {
		return original, nil
	}

	patchDoc := fmt.Sprintf("--- %s\n+++ %s (refactored)\n%s", filename, filename, describeHunks(accepted))

	tmp, err := os.CreateTemp("", "refract-*.patch")
	if err != nil {
		return "", fmt.Errorf("driver: creating patch temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(patchDoc); err != nil {
		tmp.Close()
		return "", fmt.Errorf("driver: writing patch temp file: %w", err)
	}
	tmp.Close()

	cmd := exec.Command("patch", "-u", "-o", "-", filename)
	cmd.Stdin, err = os.Open(tmp.Name())
	if err != nil {
		return "", fmt.Errorf("driver: opening patch temp file: %w", err)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("driver: patch failed for %s: %w: %s", filename, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
