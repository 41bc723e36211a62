package main

import (
	"log"

	"golang.design/x/clipboard"
)

// cellClipboard copies cell stacks through the system clipboard, falling
// back to an in-process buffer when no clipboard is available.
type cellClipboard struct {
	system bool
	local  []byte
}

func newCellClipboard() *cellClipboard {
	if err := clipboard.Init(); err != nil {
		log.Printf("System clipboard unavailable, using local buffer: %v", err)
		return &cellClipboard{}
	}
	return &cellClipboard{system: true}
}

func (c *cellClipboard) Write(data []byte) {
	c.local = append(c.local[:0], data...)
	if c.system {
		clipboard.Write(clipboard.FmtText, data)
	}
}

func (c *cellClipboard) Read() []byte {
	if c.system {
		if data := clipboard.Read(clipboard.FmtText); len(data) > 0 {
			return data
		}
	}
	return c.local
}
