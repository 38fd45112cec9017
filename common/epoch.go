package common

// DayMs is the length of the settlement epoch in milliseconds.
const DayMs = 86_400_000

// DayStart returns the start of the UTC day containing ts (milliseconds since
// Unix epoch).
func DayStart(ts int) int {
	return ts - ts%DayMs
}

// IsReleaseDue returns true if at least one day boundary lies between the
// day of the last settlement and now.
func IsReleaseDue(marker, now int) bool {
	return DayStart(now) > DayStart(marker)
}

// MissedEpochs returns the number of whole epochs that passed without
// settlement. It is zero when the release is made on the next day after
// marker.
func MissedEpochs(marker, now int) int {
	missed := (DayStart(now)-DayStart(marker))/DayMs - 1
	if missed < 0 {
		return 0
	}
	return missed
}
