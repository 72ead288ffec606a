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

package headless

import (
	"sync"
	"sync/atomic"

	"github.com/jetsetilly/dtmovie/assert"
	"github.com/jetsetilly/dtmovie/emulation"
	"github.com/jetsetilly/dtmovie/inputs"
)

// TicksPerFrame is the number of CPU ticks in a frame. 486MHz at 60 frames
// per second.
const TicksPerFrame = 8100000

// Core implements the emulation.Core interface.
type Core struct {
	barrier sync.Mutex

	// goroutine ID of the holder of the barrier. zero if the barrier is not
	// held
	owner atomic.Uint64

	crit  sync.Mutex
	state emulation.State
	game  emulation.Game
	ticks uint64
	jobs  []func()

	devices inputs.Devices
	bongos  uint8

	discs map[string]bool
	disc  string

	resets       int
	motionResets int
}

// NewCore is the preferred method of initialisation for the Core type.
func NewCore(game emulation.Game) *Core {
	return &Core{
		state: emulation.EmulatorStart,
		game:  game,
		discs: make(map[string]bool),
	}
}

// Boot the emulation. The emulation will be in the Running state.
func (c *Core) Boot() {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.state = emulation.Running
}

// Shutdown puts the emulation into the Ending state.
func (c *Core) Shutdown() {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.state = emulation.Ending
}

// State implements the emulation.Core interface.
func (c *Core) State() emulation.State {
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.state
}

// RunExclusive implements the emulation.Core interface.
func (c *Core) RunExclusive(f func()) {
	id := assert.GetGoRoutineID()
	if c.owner.Load() == id {
		f()
		return
	}

	c.barrier.Lock()
	c.owner.Store(id)
	defer func() {
		c.owner.Store(0)
		c.barrier.Unlock()
	}()

	f()
}

// InsideBarrier returns true if the calling goroutine holds the barrier.
func (c *Core) InsideBarrier() bool {
	return c.owner.Load() == assert.GetGoRoutineID()
}

// Frame emulates a single frame. The poll function is called inside the
// barrier with the tick counter at the start of the frame. The tick counter
// is then advanced by TicksPerFrame. The poll function can be nil.
func (c *Core) Frame(poll func()) {
	c.RunExclusive(func() {
		if poll != nil {
			poll()
		}
		c.AdvanceTicks(TicksPerFrame)
	})
}

// Ticks implements the emulation.Core interface.
func (c *Core) Ticks() uint64 {
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.ticks
}

// AdvanceTicks moves the tick counter forward.
func (c *Core) AdvanceTicks(n uint64) {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.ticks += n
}

// SetTicks sets the tick counter. Used when restoring a save state.
func (c *Core) SetTicks(n uint64) {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.ticks = n
}

// Break implements the emulation.Core interface.
func (c *Core) Break() bool {
	c.crit.Lock()
	defer c.crit.Unlock()
	wasRunning := c.state == emulation.Running
	if wasRunning {
		c.state = emulation.Paused
	}
	return wasRunning
}

// Resume implements the emulation.Core interface.
func (c *Core) Resume() {
	c.crit.Lock()
	defer c.crit.Unlock()
	if c.state == emulation.Paused {
		c.state = emulation.Running
	}
}

// QueueHostJob implements the emulation.Core interface.
func (c *Core) QueueHostJob(f func()) {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.jobs = append(c.jobs, f)
}

// RunHostJobs runs every queued host job on the calling goroutine, which is
// the host goroutine by definition. Jobs queued by jobs are also run. Returns
// the number of jobs run.
func (c *Core) RunHostJobs() int {
	var n int
	for {
		c.crit.Lock()
		jobs := c.jobs
		c.jobs = nil
		c.crit.Unlock()

		if len(jobs) == 0 {
			return n
		}

		for _, j := range jobs {
			j()
			n++
		}
	}
}

// Game implements the emulation.Core interface.
func (c *Core) Game() emulation.Game {
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.game
}

// SetGame changes the game that is loaded.
func (c *Core) SetGame(game emulation.Game) {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.game = game
}

// ConfigureDevices implements the emulation.Core interface.
func (c *Core) ConfigureDevices(d inputs.Devices, bongos uint8) {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.devices = d
	c.bongos = bongos
}

// Devices returns the devices most recently configured.
func (c *Core) Devices() (inputs.Devices, uint8) {
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.devices, c.bongos
}

// ResetMotionControllers implements the emulation.Core interface.
func (c *Core) ResetMotionControllers() {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.motionResets++
}

// MotionResets returns the number of calls to ResetMotionControllers().
func (c *Core) MotionResets() int {
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.motionResets
}

// AddDisc makes a disc available to ChangeDisc().
func (c *Core) AddDisc(name string) {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.discs[name] = true
}

// ChangeDisc implements the emulation.Core interface.
func (c *Core) ChangeDisc(name string) bool {
	c.crit.Lock()
	defer c.crit.Unlock()
	if !c.discs[name] {
		return false
	}
	c.disc = name
	return true
}

// Disc returns the name of the current disc. The empty string if the disc
// has never been changed.
func (c *Core) Disc() string {
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.disc
}

// TapReset implements the emulation.Core interface.
func (c *Core) TapReset() {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.resets++
}

// Resets returns the number of calls to TapReset().
func (c *Core) Resets() int {
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.resets
}
