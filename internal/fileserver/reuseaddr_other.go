//go:build !unix

package fileserver

import "syscall"

func reuseAddr(_, _ string, _ syscall.RawConn) error {
	return nil
}
