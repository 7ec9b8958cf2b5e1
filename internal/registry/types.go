package registry

// Area is one entry from the Home Assistant area registry.
type Area struct {
	AreaID  string `json:"area_id"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// EntityEntry is one entry from the entity registry. AreaID, when set,
// overrides any area inherited from the owning device.
type EntityEntry struct {
	EntityID   string `json:"entity_id"`
	AreaID     string `json:"area_id,omitempty"`
	DeviceID   string `json:"device_id,omitempty"`
	Platform   string `json:"platform,omitempty"`
	DisabledBy string `json:"disabled_by,omitempty"`
}

// DeviceEntry is one entry from the device registry. Entities whose registry
// entry has no area of its own inherit the device's area.
type DeviceEntry struct {
	ID           string `json:"id"`
	AreaID       string `json:"area_id,omitempty"`
	Name         string `json:"name,omitempty"`
	NameByUser   string `json:"name_by_user,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Model        string `json:"model,omitempty"`
}

// AreaEntity is one entity resolved into an area, joined with its live state.
type AreaEntity struct {
	EntityID     string `json:"entity_id"`
	FriendlyName string `json:"friendly_name"`
	Domain       string `json:"domain"`
	State        string `json:"state,omitempty"`

	// AreaSource records which registry assigned the area: "entity" when the
	// entity registry carries its own area_id, "device" when inherited.
	AreaSource string `json:"area_source"`
}

// Area source values for AreaEntity.
const (
	AreaSourceEntity = "entity"
	AreaSourceDevice = "device"
)
