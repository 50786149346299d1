package domain

type RecurrencePattern string

const (
	PatternWeekly   RecurrencePattern = "weekly"
	PatternBiweekly RecurrencePattern = "biweekly"
)

// ValidRecurrencePatterns is the canonical set of accepted pattern strings.
var ValidRecurrencePatterns = map[string]bool{
	"weekly": true, "biweekly": true,
}

type AnchorType string

const (
	AnchorHoliday      AnchorType = "holiday"
	AnchorCamp         AnchorType = "camp"
	AnchorSpecialEvent AnchorType = "special_event"
	AnchorNoMeeting    AnchorType = "no_meeting"
)

// ValidAnchorTypes is the canonical set of accepted anchor type strings.
var ValidAnchorTypes = map[string]bool{
	"holiday": true, "camp": true, "special_event": true, "no_meeting": true,
}

type DistributionScope string

const (
	ScopeYear   DistributionScope = "year"
	ScopePeriod DistributionScope = "period"
	ScopeMonth  DistributionScope = "month"
)

var ValidDistributionScopes = map[string]bool{
	"year": true, "period": true, "month": true,
}

type PlacementRule string

const (
	PlaceNearStart    PlacementRule = "near_start"
	PlaceNearEnd      PlacementRule = "near_end"
	PlaceEvenlySpaced PlacementRule = "evenly_spaced"
	PlaceManual       PlacementRule = "manual"
)

var ValidPlacementRules = map[string]bool{
	"near_start": true, "near_end": true, "evenly_spaced": true, "manual": true,
}

type ReminderChannel string

const (
	ChannelEmail ReminderChannel = "email"
	ChannelSMS   ReminderChannel = "sms"
	ChannelPush  ReminderChannel = "push"
)

var ValidReminderChannels = map[string]bool{
	"email": true, "sms": true, "push": true,
}

type GrantStatus string

const (
	GrantGranted         GrantStatus = "granted"
	GrantAlreadyAchieved GrantStatus = "already_achieved"
	GrantFailed          GrantStatus = "failed"
)
