package optdep

import (
	"os"

	"github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
)

// ProcHandle is the procinfo capability's handle: snapshot access to the
// current process's open files and network connections.
type ProcHandle struct {
	proc *process.Process
}

// OpenFiles returns the process's open file handles as (path, fd) pairs.
func (h *ProcHandle) OpenFiles() ([]process.OpenFilesStat, error) {
	return h.proc.OpenFiles()
}

// Connections returns the process's active network connections.
func (h *ProcHandle) Connections() ([]net.ConnectionStat, error) {
	return h.proc.Connections()
}

func init() {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		// No introspection on this platform; leave the capability
		// unregistered so probes report it absent.
		return
	}
	h := &ProcHandle{proc: proc}
	Register(Capability{
		Name:   ProcInfo,
		Handle: h,
		Check: func() error {
			// Open-file enumeration is the part that varies by
			// platform and build; connections follow the same path.
			_, err := h.OpenFiles()
			return err
		},
	})
}
