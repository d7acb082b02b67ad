package demo

import "github.com/gbelpiede/cx-ai-agent-prototype/internal/domain"

// scenes is the scripted three-act conversation shown on the demo page.
// Each scene extends the previous one, so switching scenes mid-playback
// never rewrites bubbles the viewer has already seen.
var scenes = []domain.DemoScene{
	{
		Number:      1,
		Title:       "Scene 1: The Hook (0-15s)",
		Description: "Proactive AI outreach vs. worker engagement",
		Messages: []domain.DemoMessage{
			{Sender: domain.DemoSenderAI, Text: "Hey, saw you clocked out at 9:15pm today. That's rough—you doing okay at the site?"},
		},
	},
	{
		Number:      2,
		Title:       "Scene 2: The Retention Check-in (15-25s)",
		Description: "Real conversation vs. generic satisfaction survey",
		Messages: []domain.DemoMessage{
			{Sender: domain.DemoSenderAI, Text: "Hey, saw you clocked out at 9:15pm today. That's rough—you doing okay at the site?"},
			{Sender: domain.DemoSenderWorker, Text: "Honestly, my feet are killing me."},
			{Sender: domain.DemoSenderAI, Text: "Got it. Anything else I should know?"},
			{Sender: domain.DemoSenderWorker, Text: "Yeah, no break today."},
		},
	},
	{
		Number:      3,
		Title:       "Scene 3: The Resolution (25-35s)",
		Description: "Action-driven AI vs. dead-end form response",
		Messages: []domain.DemoMessage{
			{Sender: domain.DemoSenderAI, Text: "Hey, saw you clocked out at 9:15pm today. That's rough—you doing okay at the site?"},
			{Sender: domain.DemoSenderWorker, Text: "Honestly, my feet are killing me."},
			{Sender: domain.DemoSenderAI, Text: "Got it. Anything else I should know?"},
			{Sender: domain.DemoSenderWorker, Text: "Yeah, no break today."},
			{Sender: domain.DemoSenderAI, Text: "I've flagged this with your manager. Help's on the way."},
		},
	},
}

// Scenes returns the full script in playback order.
func Scenes() []domain.DemoScene {
	out := make([]domain.DemoScene, len(scenes))
	copy(out, scenes)
	return out
}

// SceneCount is the number of scripted scenes.
func SceneCount() int {
	return len(scenes)
}
