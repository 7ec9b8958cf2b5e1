// Package haclient is the Home Assistant API client.
//
// Entity states come from the REST API (GET /api/states); the three
// registries (areas, entities, devices) come from the WebSocket API, which
// is the only place Home Assistant exposes them. Both transports
// authenticate with the same long-lived access token, whose JWT claims can
// be introspected with InspectToken to surface expiry problems at startup
// instead of as mysterious 401s later.
package haclient
