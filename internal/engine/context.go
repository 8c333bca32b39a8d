package engine

// --- Turn context and helpers -----------------------------------------

// turnContext accumulates narration while a single turn resolves. Main-line
// events go to summary; replacement prompts and bench changes that the
// caller renders separately go to switchMessages.
type turnContext struct {
	s              *Session
	summary        []string
	switchMessages []string
}

func newTurnContext(s *Session) *turnContext {
	return &turnContext{s: s, summary: make([]string, 0, 16)}
}

func (tc *turnContext) add(msg string) { tc.summary = append(tc.summary, msg) }

func (tc *turnContext) addAll(msgs []string) { tc.summary = append(tc.summary, msgs...) }

func (tc *turnContext) addSwitch(msg string) {
	tc.switchMessages = append(tc.switchMessages, msg)
}

// joinWithAnd renders a name list the way battle text reads: "A", "A and
// B", "A, B and C".
func joinWithAnd(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		out := names[0]
		for _, n := range names[1 : len(names)-1] {
			out += ", " + n
		}
		return out + " and " + names[len(names)-1]
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
