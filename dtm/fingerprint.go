// This file is part of dtmovie.
//
// dtmovie is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// dtmovie is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with dtmovie.  If not, see <https://www.gnu.org/licenses/>.

package dtm

// Fingerprint is the environment of the emulator recorded in the header. If
// the SaveConfig flag of a header is set then the fingerprint is applied to
// the environment before playback.
type Fingerprint struct {
	VideoBackend  string
	AudioEmulator string
	CPUCore       uint8

	SkipIdle      bool
	DualCore      bool
	Progressive   bool
	DSPHLE        bool
	FastDiscSpeed bool

	EFBAccessEnable         bool
	EFBCopyEnable           bool
	SkipEFBCopyToRAM        bool
	EFBCopyCacheEnable      bool
	EFBEmulateFormatChanges bool
	ImmediateXFB            bool
	SkipXFBCopyToRAM        bool

	SyncGPU      bool
	PAL60        bool
	Language     uint8
	FollowBranch bool
	UseFMA       bool
	Widescreen   bool

	Memcards  uint8
	ClearSave bool
	NetPlay   bool

	Revision    [20]byte
	DSPIROMHash uint32
	DSPCoefHash uint32
}

// Fingerprint extracts the environment from the header.
func (h Header) Fingerprint() Fingerprint {
	return Fingerprint{
		VideoBackend:            h.VideoBackendString(),
		AudioEmulator:           h.AudioEmulatorString(),
		CPUCore:                 h.CPUCore,
		SkipIdle:                h.SkipIdle,
		DualCore:                h.DualCore,
		Progressive:             h.Progressive,
		DSPHLE:                  h.DSPHLE,
		FastDiscSpeed:           h.FastDiscSpeed,
		EFBAccessEnable:         h.EFBAccessEnable,
		EFBCopyEnable:           h.EFBCopyEnable,
		SkipEFBCopyToRAM:        h.SkipEFBCopyToRAM,
		EFBCopyCacheEnable:      h.EFBCopyCacheEnable,
		EFBEmulateFormatChanges: h.EFBEmulateFormatChanges,
		ImmediateXFB:            h.ImmediateXFB,
		SkipXFBCopyToRAM:        h.SkipXFBCopyToRAM,
		SyncGPU:                 h.SyncGPU,
		PAL60:                   h.PAL60,
		Language:                h.Language,
		FollowBranch:            h.FollowBranch,
		UseFMA:                  h.UseFMA,
		Widescreen:              h.Widescreen,
		Memcards:                h.Memcards,
		ClearSave:               h.ClearSave,
		NetPlay:                 h.NetPlay,
		Revision:                h.Revision,
		DSPIROMHash:             h.DSPIROMHash,
		DSPCoefHash:             h.DSPCoefHash,
	}
}

// SetFingerprint stores the environment in the header and sets the
// SaveConfig flag.
func (h *Header) SetFingerprint(f Fingerprint) {
	h.SaveConfig = true
	putCString(h.VideoBackend[:], f.VideoBackend)
	putCString(h.AudioEmulator[:], f.AudioEmulator)
	h.CPUCore = f.CPUCore
	h.SkipIdle = f.SkipIdle
	h.DualCore = f.DualCore
	h.Progressive = f.Progressive
	h.DSPHLE = f.DSPHLE
	h.FastDiscSpeed = f.FastDiscSpeed
	h.EFBAccessEnable = f.EFBAccessEnable
	h.EFBCopyEnable = f.EFBCopyEnable
	h.SkipEFBCopyToRAM = f.SkipEFBCopyToRAM
	h.EFBCopyCacheEnable = f.EFBCopyCacheEnable
	h.EFBEmulateFormatChanges = f.EFBEmulateFormatChanges
	h.ImmediateXFB = f.ImmediateXFB
	h.SkipXFBCopyToRAM = f.SkipXFBCopyToRAM
	h.SyncGPU = f.SyncGPU
	h.PAL60 = f.PAL60
	h.Language = f.Language
	h.FollowBranch = f.FollowBranch
	h.UseFMA = f.UseFMA
	h.Widescreen = f.Widescreen
	h.Memcards = f.Memcards
	h.ClearSave = f.ClearSave
	h.NetPlay = f.NetPlay
	h.Revision = f.Revision
	h.DSPIROMHash = f.DSPIROMHash
	h.DSPCoefHash = f.DSPCoefHash
}
