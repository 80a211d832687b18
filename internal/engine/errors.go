package engine

import "errors"

var (
	ErrInvalidGameType    = errors.New("invalid game type")
	ErrInvalidGameSubType = errors.New("invalid game sub type")
	ErrInvalidSlotCount   = errors.New("invalid slot count")
	ErrInvalidRace        = errors.New("invalid race")
	ErrNoHostSlot         = errors.New("map has no slot a human can take")

	ErrSlotOutOfRange     = errors.New("slot out of range")
	ErrSlotNotJoinable    = errors.New("slot is not open")
	ErrSlotOccupied       = errors.New("slot is occupied")
	ErrSlotNotOccupied    = errors.New("slot has no player")
	ErrUnknownSlot        = errors.New("unknown slot")
	ErrInvalidTransition  = errors.New("invalid slot transition")
	ErrNotAnOccupant      = errors.New("only humans and computers can take a slot")
	ErrComputerNotAllowed = errors.New("computers cannot be added to this lobby")
	ErrForcedRace         = errors.New("slot race is fixed by the map")
	ErrObserversDisabled  = errors.New("lobby has no observers")
	ErrNotObserverSlot    = errors.New("not a movable observer slot")

	ErrLobbyFull          = errors.New("lobby is full")
	ErrNameTaken          = errors.New("name already in lobby")
	ErrNotHost            = errors.New("only the host can do that")
	ErrCannotKickSelf     = errors.New("host cannot kick themselves")
	ErrNotKickable        = errors.New("only humans and computers can be kicked")
	ErrUnknownActor       = errors.New("player is not in lobby")
	ErrUnsupportedCommand = errors.New("unsupported command")
	ErrLobbyDissolved     = errors.New("lobby no longer exists")
)
