package tui

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
)

func copyToClipboard(s string) error {
	s = strings.ReplaceAll(s, "\r\n", "\n")

	if err := clipboard.WriteAll(s); err == nil {
		return nil
	}
	// Headless Linux fallbacks (Wayland first, then X11).
	if err := runClipboardCmd("wl-copy", nil, s); err == nil {
		return nil
	}
	if err := runClipboardCmd("xclip", []string{"-selection", "clipboard"}, s); err == nil {
		return nil
	}
	return runClipboardCmd("xsel", []string{"--clipboard", "--input"}, s)
}

func runClipboardCmd(name string, args []string, stdin string) error {
	if _, err := exec.LookPath(name); err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	if err := cmd.Run(); err != nil {
		return errors.New(name + ": " + err.Error())
	}
	return nil
}
