// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host compositor.
//
// touchviz never creates a device. A host that renders on the GPU may expose
// its device through DeviceHandleProvider so the overlay can match the
// surface's pixel format when uploading the marker texture.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider.
type DeviceHandle = gpucontext.DeviceProvider

// DeviceHandleProvider is an optional host interface.
type DeviceHandleProvider interface {
	DeviceHandle() DeviceHandle
}

// SurfaceFormat returns the surface format advertised by h, or
// TextureFormatUndefined if h does not implement DeviceHandleProvider or
// has no device.
func SurfaceFormat(h any) gputypes.TextureFormat {
	p, ok := h.(DeviceHandleProvider)
	if !ok {
		return gputypes.TextureFormatUndefined
	}
	dh := p.DeviceHandle()
	if dh == nil {
		return gputypes.TextureFormatUndefined
	}
	return dh.SurfaceFormat()
}

// TextureDescriptor describes parameters for creating a texture.
// This mirrors WebGPU's GPUTextureDescriptor.
type TextureDescriptor struct {
	// Label is an optional debug label for the texture.
	Label string

	// Width is the texture width in pixels.
	Width uint32

	// Height is the texture height in pixels.
	Height uint32

	// Format is the texture pixel format.
	Format gputypes.TextureFormat

	// Usage specifies how the texture will be used.
	Usage TextureUsage
}

// TextureUsage specifies how a texture can be used.
// These flags can be combined with bitwise OR.
type TextureUsage uint32

const (
	// TextureUsageCopySrc allows the texture to be used as a copy source.
	TextureUsageCopySrc TextureUsage = 1 << iota

	// TextureUsageCopyDst allows the texture to be used as a copy destination.
	TextureUsageCopyDst

	// TextureUsageTextureBinding allows the texture to be sampled.
	TextureUsageTextureBinding
)

// SpriteTextureDescriptor returns the descriptor used for overlay sprites:
// written once by the CPU, sampled by every frame afterward.
func SpriteTextureDescriptor(width, height uint32, format gputypes.TextureFormat) TextureDescriptor {
	return TextureDescriptor{
		Label:  "touchviz-marker",
		Width:  width,
		Height: height,
		Format: format,
		Usage:  TextureUsageCopyDst | TextureUsageTextureBinding,
	}
}

// BytesPerPixel returns the size of one texel for the 8-bit color formats
// the overlay uploads, or 0 for anything else.
func BytesPerPixel(format gputypes.TextureFormat) int {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
		return 4
	default:
		return 0
	}
}

// Texture represents a host texture resource holding the marker sprite.
type Texture interface {
	// Width returns the texture width in pixels.
	Width() uint32

	// Height returns the texture height in pixels.
	Height() uint32

	// Format returns the texture pixel format.
	Format() gputypes.TextureFormat

	// Destroy releases resources associated with this texture.
	Destroy()
}

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used by CPU-only hosts where no GPU is available.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns RGBA8, the layout of *image.RGBA framebuffers.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}
