package service

import (
	"errors"
	"fmt"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/content"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/engine"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/game"
	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/keys"
)

// BattleRepo is the minimal repository interface battle operations require.
// Using a small interface simplifies testing.
type BattleRepo interface {
	CreateTrainer(t *game.Trainer) error
	GetTrainerByID(id uint) (*game.Trainer, error)
	GetTrainerByName(name string) (*game.Trainer, error)
	SaveTrainer(t *game.Trainer) error
	AddToParty(trainerID uint, c *game.Combatant) error
	CreateBattleRecord(rec *game.BattleRecord) error
}

var (
	ErrTrainerNotFound   = errors.New("trainer not found")
	ErrOpponentNotFound  = errors.New("opponent not found")
	ErrUnsupportedFormat = errors.New("unsupported battle format")
	ErrPartnerRequired   = errors.New("a multi battle needs a partner and two opponents")
)

// WildParticipant is the engine participant id of a wild side. It never maps
// to a trainer row.
const WildParticipant int64 = -1

// WildBattleRequest describes a wild encounter to open. Doubles encounters
// carry two specs.
type WildBattleRequest struct {
	TrainerID uint
	Wild      []WildSpec
	Format    game.BattleFormat
	RulesetID string
}

// TrainerBattleRequest describes an NPC battle. Multi format takes exactly
// two opponent names plus an NPC partner fighting alongside the trainer.
type TrainerBattleRequest struct {
	TrainerID     uint
	OpponentNames []string
	PartnerName   string
	Format        game.BattleFormat
	RulesetID     string
}

func normalizeFormat(f game.BattleFormat) (game.BattleFormat, error) {
	switch f {
	case "":
		return game.FormatSingles, nil
	case game.FormatSingles, game.FormatDoubles, game.FormatMulti:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// newPublicID draws routing ids until one is not already live.
func newPublicID(mgr *engine.Manager) string {
	for {
		code := keys.NewCode(keys.PublicIDLength)
		if _, err := mgr.SessionByPublicID(code); err != nil {
			return code
		}
	}
}

// snapshotParty deep-copies the trainer's party so a live battle never
// mutates repository state before the outcome is persisted. Record ids are
// kept so the write-back can find its way home.
func snapshotParty(t *game.Trainer) []*game.Combatant {
	roster := make([]*game.Combatant, 0, len(t.Party))
	for i := range t.Party {
		c := t.Party[i]
		c.Moves = append([]game.MoveSlot(nil), t.Party[i].Moves...)
		roster = append(roster, &c)
	}
	return roster
}

// humanSide snapshots the requesting trainer as a player-controlled side.
func humanSide(t *game.Trainer, team int) engine.StartSide {
	return engine.StartSide{
		Participant: int64(t.ID),
		Name:        t.Name,
		Team:        team,
		Class:       t.Class,
		Roster:      snapshotParty(t),
	}
}

// aiSide snapshots an NPC trainer as an AI-controlled side. AI participants
// carry the negated trainer id so battle records can recover who it was.
func aiSide(t *game.Trainer, team int) engine.StartSide {
	return engine.StartSide{
		Participant: -int64(t.ID),
		Name:        npcDisplayName(t),
		Team:        team,
		AI:          true,
		Class:       t.Class,
		Roster:      snapshotParty(t),
	}
}

// npcDisplayName joins class and name the way battle intros announce
// opponents ("Youngster Joey sent out ...").
func npcDisplayName(t *game.Trainer) string {
	if t.Class != game.ClassNone {
		return fmt.Sprintf("%s %s", t.Class, t.Name)
	}
	return t.Name
}

// StartWildBattle loads the trainer's party, spawns the wild side and opens
// the session. The returned messages are the send-out narration.
func StartWildBattle(repo BattleRepo, mgr *engine.Manager, db *content.DB, req WildBattleRequest) (*engine.Session, []string, error) {
	tr, err := repo.GetTrainerByID(req.TrainerID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: id %d", ErrTrainerNotFound, req.TrainerID)
	}
	format, err := normalizeFormat(req.Format)
	if err != nil {
		return nil, nil, err
	}
	if format == game.FormatMulti {
		return nil, nil, fmt.Errorf("%w: wild battles support singles and doubles", ErrUnsupportedFormat)
	}
	if len(req.Wild) == 0 {
		return nil, nil, fmt.Errorf("%w: a wild battle needs at least one encounter", engine.ErrInvalidRoster)
	}

	wild := make([]*game.Combatant, 0, len(req.Wild))
	for _, spec := range req.Wild {
		c, err := NewWildCombatant(db, spec)
		if err != nil {
			return nil, nil, err
		}
		wild = append(wild, c)
	}

	cfg := engine.StartConfig{
		Kind:      game.BattleWild,
		Format:    format,
		RulesetID: req.RulesetID,
		PublicID:  newPublicID(mgr),
		Sides: []engine.StartSide{
			humanSide(tr, engine.TeamTrainer),
			{Participant: WildParticipant, Name: "Wild", Team: engine.TeamOpponent, AI: true, Roster: wild},
		},
	}
	return mgr.Start(cfg)
}

// StartTrainerBattle opens a battle against NPC trainers looked up by name.
func StartTrainerBattle(repo BattleRepo, mgr *engine.Manager, req TrainerBattleRequest) (*engine.Session, []string, error) {
	tr, err := repo.GetTrainerByID(req.TrainerID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: id %d", ErrTrainerNotFound, req.TrainerID)
	}
	format, err := normalizeFormat(req.Format)
	if err != nil {
		return nil, nil, err
	}

	wantOpponents := 1
	if format == game.FormatMulti {
		wantOpponents = 2
		if req.PartnerName == "" {
			return nil, nil, ErrPartnerRequired
		}
	}
	if len(req.OpponentNames) != wantOpponents {
		return nil, nil, fmt.Errorf("%w: %s format needs %d opponent(s), got %d",
			ErrOpponentNotFound, format, wantOpponents, len(req.OpponentNames))
	}

	sides := []engine.StartSide{humanSide(tr, engine.TeamTrainer)}
	if format == game.FormatMulti {
		partner, err := repo.GetTrainerByName(req.PartnerName)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %q", ErrTrainerNotFound, req.PartnerName)
		}
		sides = append(sides, aiSide(partner, engine.TeamTrainer))
	}
	for _, name := range req.OpponentNames {
		npc, err := repo.GetTrainerByName(name)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %q", ErrOpponentNotFound, name)
		}
		sides = append(sides, aiSide(npc, engine.TeamOpponent))
	}

	cfg := engine.StartConfig{
		Kind:      game.BattleTrainer,
		Format:    format,
		RulesetID: req.RulesetID,
		PublicID:  newPublicID(mgr),
		Sides:     sides,
	}
	return mgr.Start(cfg)
}
