package engine

import (
	"fmt"
	"os"
	"sync"
	"syscall"
	"unsafe"
)

// mmapFile wraps a single memory-mapped backing file. Unlike the
// teacher's MemoryMapManager, an engine owns exactly one of these for
// its whole lifetime, so there is no registry of named mappings here.
type mmapFile struct {
	mu   sync.RWMutex
	file *os.File
	data []byte
	size int64
	path string
}

// openMmapFile opens path, creates it if create is true, truncates it
// to size when growing a fresh file, and maps it PROT_READ|PROT_WRITE,
// MAP_SHARED.
func openMmapFile(path string, size int64, create bool) (*mmapFile, error) {
	flags := os.O_RDWR
	if create {
		flags |= os.O_CREATE
	}
	file, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("annstore: open backing file: %w", err)
	}

	if size > 0 {
		stat, err := file.Stat()
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("annstore: stat backing file: %w", err)
		}
		if stat.Size() < size {
			if err := file.Truncate(size); err != nil {
				file.Close()
				return nil, fmt.Errorf("annstore: truncate backing file: %w", err)
			}
		} else {
			size = stat.Size()
		}
	} else {
		stat, err := file.Stat()
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("annstore: stat backing file: %w", err)
		}
		size = stat.Size()
	}

	if size == 0 {
		file.Close()
		return nil, fmt.Errorf("annstore: cannot map empty file")
	}

	data, err := syscall.Mmap(int(file.Fd()), 0, int(size),
		syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("annstore: mmap backing file: %w", err)
	}

	return &mmapFile{
		file: file,
		data: data,
		size: size,
		path: path,
	}, nil
}

// Data returns the mapped region. Callers must hold the engine's lock
// for the duration of any read or write through the returned slice.
func (m *mmapFile) Data() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data
}

func (m *mmapFile) Size() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.size
}

// Sync flushes dirty pages to disk via msync(MS_SYNC).
func (m *mmapFile) Sync() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.data == nil {
		return fmt.Errorf("annstore: mapping is closed")
	}

	_, _, errno := syscall.Syscall(syscall.SYS_MSYNC,
		uintptr(unsafe.Pointer(&m.data[0])),
		uintptr(m.size),
		syscall.MS_SYNC)
	if errno != 0 {
		return fmt.Errorf("annstore: msync failed: %v", errno)
	}
	return nil
}

// Close unmaps the region and closes the underlying file.
func (m *mmapFile) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var err error
	if m.data != nil {
		if unmapErr := syscall.Munmap(m.data); unmapErr != nil {
			err = fmt.Errorf("annstore: munmap: %w", unmapErr)
		}
		m.data = nil
	}
	if m.file != nil {
		if closeErr := m.file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("annstore: close backing file: %w", closeErr)
		}
		m.file = nil
	}
	return err
}
