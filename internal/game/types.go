package game

// Message represents an on-screen message that fades over time.
type Message struct {
	Text      string
	TicksLeft int // Updates remaining
	MaxTicks  int // Initial duration
}

// Alpha returns the message opacity for its remaining lifetime.
func (m Message) Alpha() uint8 {
	if m.MaxTicks <= 0 {
		return 0
	}
	return uint8(255 * m.TicksLeft / m.MaxTicks)
}

// goldPerChest is added when a chest holds "gold".
const goldPerChest = 10

// keyItem opens locked doors and is consumed doing so.
const keyItem = "key"

// itemAbilities maps items to the ability learned on pickup.
var itemAbilities = map[string]string{
	"scroll": "reveal",
	"hammer": "break",
}
