package coder

import "errors"

var (
	ErrTooSmall      = errors.New("account data too small")
	ErrHeadPadding   = errors.New("head padding mismatch")
	ErrTailPadding   = errors.New("tail padding mismatch")
	ErrWordLength    = errors.New("interior length not a multiple of 8 bytes")
	ErrBigEndianHost = errors.New("unsupported big-endian host")
	ErrInvalidFlags  = errors.New("unexpected account flags")
	ErrMarketSize    = errors.New("market layout size mismatch")
	ErrQueueSize     = errors.New("event queue data too small")
	ErrEventFlags    = errors.New("unknown event flags")
)
