package maintenance

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// ResetPrompt is shown before deleting everything.
const ResetPrompt = "do you really want to delete ALL data (type 'yes'): "

// Reset deletes the main directory and the config file after the user
// typed "yes" on in. It reports whether anything was deleted.
func Reset(mainDir, configPath string, in io.Reader, out io.Writer) (bool, error) {
	fmt.Fprint(out, ResetPrompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	if strings.TrimSpace(answer) != "yes" {
		fmt.Fprintln(out, "nothing deleted")
		return false, nil
	}

	if err := os.RemoveAll(mainDir); err != nil {
		return false, fmt.Errorf("remove %s: %w", mainDir, err)
	}
	if err := ResetConfig(configPath); err != nil {
		return false, err
	}
	return true, nil
}

// ResetConfig deletes the config file; the defaults are written again on
// the next start.
func ResetConfig(configPath string) error {
	if err := os.Remove(configPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", configPath, err)
	}
	return nil
}
