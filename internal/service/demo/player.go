package demo

import (
	"time"

	"github.com/gbelpiede/cx-ai-agent-prototype/internal/domain"
)

// DefaultMessageDelay is the pause between bubbles during auto-playback.
const DefaultMessageDelay = 800 * time.Millisecond

// Player tracks playback position inside the scripted demo for a single
// viewer. It is not safe for concurrent use; each connection owns one.
type Player struct {
	scene    int // 1-based
	revealed int // bubbles shown so far in the current scene
	delay    time.Duration
}

func NewPlayer(delay time.Duration) *Player {
	if delay <= 0 {
		delay = DefaultMessageDelay
	}
	return &Player{scene: 1, delay: delay}
}

// Select jumps to the given scene and restarts its playback. Out-of-range
// numbers clamp to the first or last scene.
func (p *Player) Select(scene int) domain.DemoScene {
	if scene < 1 {
		scene = 1
	}
	if scene > len(scenes) {
		scene = len(scenes)
	}
	p.scene = scene
	p.revealed = 0
	return p.Scene()
}

// Next moves to the following scene, clamping at the last.
func (p *Player) Next() domain.DemoScene {
	return p.Select(p.scene + 1)
}

// Prev moves to the preceding scene, clamping at the first.
func (p *Player) Prev() domain.DemoScene {
	return p.Select(p.scene - 1)
}

// Reset replays the current scene from its first bubble.
func (p *Player) Reset() domain.DemoScene {
	return p.Select(p.scene)
}

// Scene returns the current scene's metadata.
func (p *Player) Scene() domain.DemoScene {
	return scenes[p.scene-1]
}

// Advance reveals the next bubble of the current scene. It returns false once
// every bubble in the scene has been shown.
func (p *Player) Advance() (domain.DemoMessage, bool) {
	script := scenes[p.scene-1].Messages
	if p.revealed >= len(script) {
		return domain.DemoMessage{}, false
	}
	msg := script[p.revealed]
	p.revealed++
	return msg, true
}

// Messages returns the bubbles revealed so far in the current scene.
func (p *Player) Messages() []domain.DemoMessage {
	script := scenes[p.scene-1].Messages
	out := make([]domain.DemoMessage, p.revealed)
	copy(out, script[:p.revealed])
	return out
}

// Delay is the configured pause between auto-played bubbles.
func (p *Player) Delay() time.Duration {
	return p.delay
}
