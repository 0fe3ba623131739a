package types

const (
	FS_UNKNOWN = iota
	FS_MANUAL
	FS_ATTI
	FS_GPS_ATTI
	FS_SPORT
	FS_TAKEOFF
	FS_ASSIST_TAKEOFF
	FS_LANDING
	FS_GOHOME
	FS_NAVIGO
	FS_HOVER
)

// StateNames are the canonical display labels, indexed by FS_ constant.
var StateNames = []string{"Unknown", "Manual", "Atti", "GPS_Atti", "Sport",
	"AutoTakeoff", "AssistedTakeoff", "AutoLanding", "GoHome", "NaviGo", "Hover"}

// stateAlias folds the spellings seen in the wild onto the canonical set.
// "Assited_Takeoff" is a long-standing typo in DJI firmware output.
var stateAlias = map[string]int{
	"Manual":           FS_MANUAL,
	"Atti":             FS_ATTI,
	"Atti_Hold":        FS_ATTI,
	"Attitude":         FS_ATTI,
	"GPS":              FS_GPS_ATTI,
	"GPS_Atti":         FS_GPS_ATTI,
	"GPS_Atti_Hold":    FS_GPS_ATTI,
	"Sport":            FS_SPORT,
	"AutoTakeoff":      FS_TAKEOFF,
	"Auto_Takeoff":     FS_TAKEOFF,
	"AssistedTakeoff":  FS_ASSIST_TAKEOFF,
	"Assisted_Takeoff": FS_ASSIST_TAKEOFF,
	"Assited_Takeoff":  FS_ASSIST_TAKEOFF,
	"AutoLanding":      FS_LANDING,
	"Auto_Landing":     FS_LANDING,
	"GoHome":           FS_GOHOME,
	"Go_Home":          FS_GOHOME,
	"NaviGo":           FS_NAVIGO,
	"Navi_Go":          FS_NAVIGO,
	"Hover":            FS_HOVER,
	"Hovering":         FS_HOVER,
}

// StateIndex maps a raw flight-state cell to its FS_ constant, FS_UNKNOWN
// for anything outside the known set.
func StateIndex(raw string) int {
	if fs, ok := stateAlias[raw]; ok {
		return fs
	}
	return FS_UNKNOWN
}

// CanonState maps a raw flight-state cell to its canonical label. Values
// outside the known set pass through unchanged, so novel states still render
// but alias noise cannot fake a transition.
func CanonState(raw string) string {
	if fs, ok := stateAlias[raw]; ok {
		return StateNames[fs]
	}
	return raw
}
