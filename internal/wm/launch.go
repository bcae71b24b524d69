package wm

import (
	"fmt"
	"os/exec"
	"strings"
	"syscall"
)

// launch starts program detached from the loop. Failures are only logged.
func (m *Manager) launch(program string) {
	if err := m.spawn(program); err != nil {
		m.log.WithError(err).WithField("program", program).Warn("cannot start program")
		return
	}
	m.log.WithField("program", program).Debug("started program")
}

// spawnProgram starts program in its own session and reaps it in the
// background, so the caller never waits on it.
func spawnProgram(program string) error {
	args := strings.Fields(program)
	if len(args) == 0 {
		return fmt.Errorf("empty command")
	}
	cmd := exec.Command(args[0], args[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
