package domaininfo

import "sort"

// Info describes a Home Assistant domain: what its entities represent,
// the service calls usually available and practical usage hints.
type Info struct {
	Domain        string   `json:"domain"`
	Description   string   `json:"description"`
	CommonActions []string `json:"common_actions"`
	Tips          []string `json:"tips,omitempty"`
}

// domains holds the curated knowledge base for the common domains.
var domains = map[string]Info{
	"light": {
		Description:   "Lighting devices with on/off and often brightness, color temperature or RGB control.",
		CommonActions: []string{"turn_on", "turn_off", "toggle"},
		Tips: []string{
			"turn_on accepts brightness_pct (0-100), color_temp_kelvin and rgb_color",
			"transition smooths brightness and color changes over the given seconds",
		},
	},
	"switch": {
		Description:   "Binary on/off devices such as smart plugs and relays.",
		CommonActions: []string{"turn_on", "turn_off", "toggle"},
	},
	"sensor": {
		Description:   "Read-only numeric or textual measurements: temperature, humidity, power and similar.",
		CommonActions: []string{},
		Tips: []string{
			"sensors expose no services, read the state and unit_of_measurement attribute",
			"device_class distinguishes temperature, humidity, energy and other kinds",
		},
	},
	"binary_sensor": {
		Description:   "Read-only on/off detectors: motion, doors, windows, presence.",
		CommonActions: []string{},
		Tips: []string{
			"device_class tells what on means: motion detected, door open, and so on",
		},
	},
	"climate": {
		Description:   "Thermostats and HVAC units with target temperature and operating modes.",
		CommonActions: []string{"set_temperature", "set_hvac_mode", "turn_on", "turn_off"},
		Tips: []string{
			"check the hvac_modes attribute before calling set_hvac_mode",
			"current_temperature and temperature attributes differ: measured vs target",
		},
	},
	"cover": {
		Description:   "Shutters, blinds, garage doors and other position-controlled openings.",
		CommonActions: []string{"open_cover", "close_cover", "stop_cover", "set_cover_position"},
		Tips: []string{
			"set_cover_position takes position 0 (closed) to 100 (open)",
		},
	},
	"media_player": {
		Description:   "Speakers, TVs and receivers with playback and volume control.",
		CommonActions: []string{"media_play", "media_pause", "volume_set", "turn_on", "turn_off"},
		Tips: []string{
			"volume_set takes volume_level between 0.0 and 1.0",
		},
	},
	"lock": {
		Description:   "Door locks.",
		CommonActions: []string{"lock", "unlock"},
	},
	"fan": {
		Description:   "Fans with speed and oscillation control.",
		CommonActions: []string{"turn_on", "turn_off", "set_percentage"},
	},
	"vacuum": {
		Description:   "Robot vacuums.",
		CommonActions: []string{"start", "pause", "return_to_base"},
	},
	"camera": {
		Description:   "Cameras exposing still images and streams.",
		CommonActions: []string{"snapshot"},
	},
	"scene": {
		Description:   "Stored device state snapshots applied as a group.",
		CommonActions: []string{"turn_on"},
		Tips: []string{
			"scenes only activate, they never turn off",
		},
	},
	"script": {
		Description:   "User-defined action sequences.",
		CommonActions: []string{"turn_on", "turn_off"},
	},
	"automation": {
		Description:   "Trigger-driven rules.",
		CommonActions: []string{"trigger", "turn_on", "turn_off"},
		Tips: []string{
			"turn_off disables the automation, trigger runs its actions immediately",
		},
	},
	"input_boolean": {
		Description:   "Virtual on/off helpers used as flags in automations.",
		CommonActions: []string{"turn_on", "turn_off", "toggle"},
	},
	"person": {
		Description:   "Tracked people; state is their presence zone.",
		CommonActions: []string{},
	},
}

// Lookup returns the knowledge-base entry for a domain. Unknown domains get
// a generic entry so callers always have something to show.
func Lookup(domain string) Info {
	if info, ok := domains[domain]; ok {
		info.Domain = domain
		return info
	}
	return Info{
		Domain:        domain,
		Description:   "No curated description for this domain.",
		CommonActions: []string{"turn_on", "turn_off", "toggle"},
		Tips: []string{
			"inspect an entity's attributes to discover its capabilities",
		},
	}
}

// IsKnown reports whether the domain has a curated entry.
func IsKnown(domain string) bool {
	_, ok := domains[domain]
	return ok
}

// Known returns the curated domain names, sorted.
func Known() []string {
	out := make([]string, 0, len(domains))
	for d := range domains {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
