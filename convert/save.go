package convert

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// save writes destDir/destName through a temporary file that is renamed into
// place once write succeeded. Unless force is set an existing destination is
// an error.
func save(destDir, destName string, force bool, write func(io.Writer) error) (err error) {
	destPath := filepath.Join(destDir, destName)
	if !force {
		if err := checkDest(destPath); err != nil {
			return err
		}
	}

	outFile, err := os.CreateTemp(destDir, destName+".*.tmp")
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", destName, defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", destName, defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), destPath); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", destName, defErr)
			}
		}
		if err != nil {
			_ = os.Remove(outFile.Name())
		}
	}()

	if err = write(outFile); err != nil {
		return fmt.Errorf("could not write destination %q: %w", destName, err)
	}
	if err = outFile.Chmod(0o644); err != nil {
		return fmt.Errorf("could not set mode of destination %q: %w", destName, err)
	}

	canRename = true
	return nil
}

func checkDest(dest string) error {
	destFileInfo, err := os.Stat(dest)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot stat destination file %q: %w", dest, err)
		}
		return nil
	}

	return fmt.Errorf("destination file already exists: %q", destFileInfo.Name())
}
