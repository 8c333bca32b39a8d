package constants

// Centralized constants for headers, env keys and route paths.
const (
	// Environment variable keys
	EnvSessionSecret = "SESSION_SECRET"
	EnvServiceSecret = "SERVICE_SECRET"
	EnvConfigPath    = "BATTLE_CONFIG_PATH"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	// Authorization prefix
	BearerPrefix = "Bearer "
)

// Battle tuning values shared between the service layer and the API.
const (
	MaxPartySize = 6
	MinLevel     = 1
	MaxLevel     = 100
)

// Routes used by the backend router
const (
	RouteAPIPrefix = "/api"

	RouteAuthToken = "/auth/token"

	RouteBattlesWild    = "/battles/wild"
	RouteBattlesTrainer = "/battles/trainer"
	RouteBattlesPvP     = "/battles/pvp"
	RouteBattlesPvPJoin = "/battles/pvp/join"
	RouteBattlesRecent  = "/battles/recent"
	RouteBattleByID     = "/battles/:battleID"
	RouteBattleActions  = "/battles/:battleID/actions"
	RouteBattleSwitch   = "/battles/:battleID/switch"
	RouteBattleCapture  = "/battles/:battleID/capture"

	RouteContentSpecies = "/content/species/:name"
	RouteContentMoves   = "/content/moves/:name"
	RouteLeaderboard    = "/leaderboard"
	RouteVersion        = "/version"
	RouteHealthz        = "/healthz"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest  = "Invalid request"
	ErrInvalidBattleID = "Invalid battle ID"
	ErrBattleNotFound  = "Battle not found"
	ErrTrainerNotFound = "Trainer not found"
	ErrSpeciesNotFound = "Species not found"
	ErrMoveNotFound    = "Move not found"

	ErrFailedStartBattle      = "Failed to start battle"
	ErrFailedCreateChallenge  = "Failed to create challenge"
	ErrFailedJoinBattle       = "Failed to join battle"
	ErrFailedStoreAction      = "Failed to store action"
	ErrFailedSwitch           = "Failed to switch"
	ErrFailedCapture          = "Failed to throw ball"
	ErrFailedFetchBattles     = "Failed to fetch battles"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedEndBattle        = "Failed to end battle"
	ErrFailedIssueToken       = "Failed to issue token"

	ErrAuthRequired     = "Authentication required"
	ErrInvalidSession   = "Invalid session"
	ErrMissingSecretEnv = "Missing SERVICE_SECRET in environment"
)

// Logging field names
const (
	LogFieldBattleID  = "battle_id"
	LogFieldPublicID  = "public_id"
	LogFieldTrainerID = "trainer_id"
	LogFieldKind      = "kind"
	LogFieldFormat    = "format"
	LogFieldTurn      = "turn"
	LogFieldWinner    = "winner"
	LogFieldCode      = "code"
	LogFieldAddr      = "addr"
	LogFieldCount     = "count"
)
