package domain

type DemoSender string

const (
	DemoSenderAI     DemoSender = "ai"
	DemoSenderWorker DemoSender = "worker"
)

// DemoMessage is one chat bubble in a scripted demo scene.
type DemoMessage struct {
	Sender DemoSender `json:"sender"`
	Text   string     `json:"text"`
}

// DemoScene is a fixed, ordered message sequence replayed for marketing
// recordings. Scene N+1 extends scene N's sequence; the demo subsystem has no
// backend dependency.
type DemoScene struct {
	Number      int           `json:"number"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Messages    []DemoMessage `json:"messages"`
}
