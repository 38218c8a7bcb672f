// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package civo

import "net"

// PageSize is the host memory page size used for AlignedMem/AlignedMemBlocks.
var PageSize uintptr = 4096

// SetPageSize updates the package-level page size used for alignment.
func SetPageSize(size int) { PageSize = uintptr(size) }

// Buffers aliases net.Buffers, a convenient way to group byte slices for
// vectored writes to an io.Writer that supports WriteTo-style batching.
type Buffers = net.Buffers

// noCopy marks a struct as unsafe to copy after first use; go vet's
// copylocks check flags any accidental copy of a type embedding it.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
