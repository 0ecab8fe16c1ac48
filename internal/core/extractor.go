package core

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"fmm/internal/domain"
)

// PayloadExt is the payload file extension tracked by the manager.
const PayloadExt = ".bundle"

// Extractor unpacks mod archives and locates payload files.
// Supports .zip (native) and .rar (via system unrar or 7z).
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractError carries the raw technical detail of an extraction failure
// for an optional diagnostic view.
type ExtractError struct {
	Msg    string
	Detail string
	Err    error
}

func (e *ExtractError) Error() string { return e.Msg }
func (e *ExtractError) Unwrap() error { return e.Err }

// Extract unpacks an archive into tempDir (recreated each call) and returns
// the paths of all payload files found inside. Errors distinguish an
// unsupported format, a missing unpack tool (with install guidance), an
// archive with no payload files, and generic extraction failure.
func (e *Extractor) Extract(archivePath, tempDir string) ([]string, error) {
	if err := os.RemoveAll(tempDir); err != nil {
		return nil, fmt.Errorf("clearing temp dir: %w", err)
	}
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}

	switch strings.ToLower(filepath.Ext(archivePath)) {
	case ".zip":
		if err := e.extractZip(archivePath, tempDir); err != nil {
			return nil, err
		}
	case ".rar":
		if err := e.extractRar(archivePath, tempDir); err != nil {
			return nil, err
		}
	default:
		return nil, domain.ErrUnsupportedArchive
	}

	payloads, err := findPayloadFiles(tempDir)
	if err != nil {
		return nil, fmt.Errorf("scanning extracted files: %w", err)
	}
	if len(payloads) == 0 {
		return nil, domain.ErrNoPayload
	}

	return payloads, nil
}

// findPayloadFiles walks dir collecting payload files recursively.
func findPayloadFiles(dir string) ([]string, error) {
	var payloads []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), PayloadExt) {
			payloads = append(payloads, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payloads, nil
}

// extractZip extracts a ZIP archive using Go's native archive/zip package.
func (e *Extractor) extractZip(archivePath, destDir string) (err error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return &ExtractError{Msg: "could not open the archive", Detail: err.Error(), Err: err}
	}
	defer func() {
		if cerr := r.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing zip: %w", cerr)
		}
	}()

	for _, f := range r.File {
		if err := e.extractZipFile(f, destDir); err != nil {
			return &ExtractError{Msg: "could not extract the archive", Detail: err.Error(), Err: err}
		}
	}

	return nil
}

// extractZipFile extracts a single file from a ZIP archive.
func (e *Extractor) extractZipFile(f *zip.File, destDir string) (err error) {
	// Sanitize the file path to prevent zip slip attacks
	destPath, err := sanitizePath(destDir, f.Name)
	if err != nil {
		return err
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(destPath, 0755)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", f.Name, err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening file %s in archive: %w", f.Name, err)
	}
	defer func() {
		if cerr := rc.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing archive entry %s: %w", f.Name, cerr)
		}
	}()

	outFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
	if err != nil {
		return fmt.Errorf("creating file %s: %w", destPath, err)
	}
	defer func() {
		if cerr := outFile.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing file %s: %w", destPath, cerr)
		}
	}()

	if _, err = io.Copy(outFile, rc); err != nil {
		return fmt.Errorf("writing file %s: %w", destPath, err)
	}

	return nil
}

// sanitizePath ensures the extracted file path is within the destination
// directory, rejecting archive entries like "../../../etc/passwd".
func sanitizePath(destDir, filePath string) (string, error) {
	cleanPath := filepath.Clean(filePath)
	destPath := filepath.Join(destDir, cleanPath)

	if !strings.HasPrefix(filepath.Clean(destPath)+string(os.PathSeparator), filepath.Clean(destDir)+string(os.PathSeparator)) {
		if filepath.Clean(destPath) != filepath.Clean(destDir) {
			return "", fmt.Errorf("path traversal detected: %s", filePath)
		}
	}

	return destPath, nil
}

// extractRarTimeout bounds rar extraction (corrupted archives or hangs).
const extractRarTimeout = 5 * time.Minute

// rarToolGuidance tells users how to get a rar extractor.
const rarToolGuidance = "install unrar (apt install unrar, brew install unrar) or p7zip, " +
	"or repack the archive as a zip file"

// extractRar extracts a RAR archive using the system unrar or 7z command.
func (e *Extractor) extractRar(archivePath, destDir string) error {
	tool, args := rarCommand(archivePath, destDir)
	if tool == "" {
		return fmt.Errorf("%w: %s", domain.ErrUnpackToolMissing, rarToolGuidance)
	}

	ctx, cancel := context.WithTimeout(context.Background(), extractRarTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, tool, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return &ExtractError{
				Msg: fmt.Sprintf("rar extraction timed out after %v", extractRarTimeout),
				Err: ctx.Err(),
			}
		}
		return &ExtractError{
			Msg:    "rar extraction failed",
			Detail: string(output),
			Err:    err,
		}
	}

	return nil
}

// rarCommand picks the first available rar extractor and its arguments.
func rarCommand(archivePath, destDir string) (string, []string) {
	if _, err := exec.LookPath("unrar"); err == nil {
		// -y: assume yes; -o+: overwrite existing
		return "unrar", []string{"x", "-y", "-o+", archivePath, destDir + string(os.PathSeparator)}
	}
	if _, err := exec.LookPath("7z"); err == nil {
		// -o: output directory (no space between -o and path)
		return "7z", []string{"x", "-y", "-o" + destDir, archivePath}
	}
	return "", nil
}
