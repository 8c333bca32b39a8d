package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/dedupe"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/engine"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/keys"
)

var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrOwnChallenge      = errors.New("you cannot accept your own challenge")
)

// Challenge is one open PvP invitation waiting for an opponent.
type Challenge struct {
	Code      string            `json:"code"`
	HostID    uint              `json:"host_id"`
	HostName  string            `json:"host_name"`
	Format    game.BattleFormat `json:"format"`
	Ranked    bool              `json:"ranked"`
	RulesetID string            `json:"ruleset_id"`
	CreatedAt time.Time         `json:"created_at"`
}

// ChallengeBook holds the open PvP challenges by code. A join consumes the
// challenge; stale ones are pruned together with idle battles.
type ChallengeBook struct {
	mu     sync.Mutex
	byCode map[string]*Challenge
}

func NewChallengeBook() *ChallengeBook {
	return &ChallengeBook{byCode: make(map[string]*Challenge)}
}

func (b *ChallengeBook) put(ch *Challenge) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, taken := b.byCode[ch.Code]; taken {
		return false
	}
	b.byCode[ch.Code] = ch
	return true
}

// takeFor removes and returns the challenge, refusing the host's own code
// without consuming it.
func (b *ChallengeBook) takeFor(code string, joinerID uint) (*Challenge, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch, ok := b.byCode[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrChallengeNotFound, code)
	}
	if ch.HostID == joinerID {
		return nil, ErrOwnChallenge
	}
	delete(b.byCode, code)
	return ch, nil
}

// Expire drops challenges older than maxAge and reports how many went.
func (b *ChallengeBook) Expire(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)
	b.mu.Lock()
	defer b.mu.Unlock()
	removed := 0
	for code, ch := range b.byCode {
		if ch.CreatedAt.Before(cutoff) {
			delete(b.byCode, code)
			removed++
		}
	}
	return removed
}

// Len reports how many challenges are open.
func (b *ChallengeBook) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.byCode)
}

// PvPChallengeRequest opens a challenge other trainers can join by code.
type PvPChallengeRequest struct {
	TrainerID uint
	Format    game.BattleFormat
	Ranked    bool
	RulesetID string
}

// CreatePvPChallenge registers an open challenge and hands back the code to
// share. The battle itself starts when an opponent joins.
func CreatePvPChallenge(book *ChallengeBook, repo BattleRepo, req PvPChallengeRequest) (*Challenge, error) {
	host, err := repo.GetTrainerByID(req.TrainerID)
	if err != nil {
		return nil, fmt.Errorf("%w: id %d", ErrTrainerNotFound, req.TrainerID)
	}
	format, err := normalizeFormat(req.Format)
	if err != nil {
		return nil, err
	}
	if format == game.FormatMulti {
		return nil, fmt.Errorf("%w: pvp challenges support singles and doubles", ErrUnsupportedFormat)
	}

	ch := &Challenge{
		HostID:    host.ID,
		HostName:  host.Name,
		Format:    format,
		Ranked:    req.Ranked,
		RulesetID: req.RulesetID,
		CreatedAt: time.Now(),
	}
	for {
		ch.Code = keys.NewCode(keys.ChallengeCodeLength)
		if book.put(ch) {
			return ch, nil
		}
	}
}

// NormalizeChallengeCode uppercases and trims a shared code so players can
// type it sloppily.
func NormalizeChallengeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type joinOutcome struct {
	session *engine.Session
	msgs    []string
	joiner  uint
}

// JoinPvPBattle consumes an open challenge and starts the battle. Concurrent
// joins on one code collapse through the shared singleflight group; whoever
// did not win the seat is told the challenge is gone.
func JoinPvPBattle(book *ChallengeBook, repo BattleRepo, mgr *engine.Manager, code string, joinerID uint) (*engine.Session, []string, error) {
	code = NormalizeChallengeCode(code)
	if code == "" {
		return nil, nil, fmt.Errorf("%w: empty code", ErrChallengeNotFound)
	}

	v, err, _ := dedupe.JoinGroup.Do(code, func() (interface{}, error) {
		ch, err := book.takeFor(code, joinerID)
		if err != nil {
			return nil, err
		}
		host, err := repo.GetTrainerByID(ch.HostID)
		if err != nil {
			book.put(ch)
			return nil, fmt.Errorf("%w: id %d", ErrTrainerNotFound, ch.HostID)
		}
		joiner, err := repo.GetTrainerByID(joinerID)
		if err != nil {
			book.put(ch)
			return nil, fmt.Errorf("%w: id %d", ErrTrainerNotFound, joinerID)
		}

		cfg := engine.StartConfig{
			Kind:      game.BattlePvP,
			Format:    ch.Format,
			Ranked:    ch.Ranked,
			RulesetID: ch.RulesetID,
			PublicID:  newPublicID(mgr),
			Sides: []engine.StartSide{
				humanSide(host, engine.TeamTrainer),
				humanSide(joiner, engine.TeamOpponent),
			},
		}
		s, msgs, err := mgr.Start(cfg)
		if err != nil {
			// A bad roster should not burn the host's invitation.
			book.put(ch)
			return nil, err
		}
		return &joinOutcome{session: s, msgs: msgs, joiner: joinerID}, nil
	})
	if err != nil {
		return nil, nil, err
	}
	out := v.(*joinOutcome)
	if out.joiner != joinerID {
		// Someone else's join was coalesced with ours and they got the seat.
		return nil, nil, fmt.Errorf("%w: %s", ErrChallengeNotFound, code)
	}
	return out.session, out.msgs, nil
}
