package game

// TrainerClass represents a canonical trainer class name used across the
// codebase. Using constants avoids typos and keeps references consistent.
type TrainerClass string

const (
	ClassNone       TrainerClass = ""
	ClassYoungster  TrainerClass = "Youngster"
	ClassLass       TrainerClass = "Lass"
	ClassHiker      TrainerClass = "Hiker"
	ClassAceTrainer TrainerClass = "Ace Trainer"
	ClassVeteran    TrainerClass = "Veteran"
	ClassLeader     TrainerClass = "Leader"
)

// classPayout is the per-level prize base a defeated trainer of this class
// pays out. Unknown classes fall back to the Youngster rate.
var classPayout = map[TrainerClass]int{
	ClassYoungster:  16,
	ClassLass:       16,
	ClassHiker:      32,
	ClassAceTrainer: 60,
	ClassVeteran:    80,
	ClassLeader:     100,
}

// PrizeMoney computes the payout for defeating a trainer of this class
// whose strongest party member has the given level.
func (t TrainerClass) PrizeMoney(highestLevel int) int {
	base, ok := classPayout[t]
	if !ok {
		base = classPayout[ClassYoungster]
	}
	if highestLevel < 1 {
		highestLevel = 1
	}
	return base * highestLevel
}
