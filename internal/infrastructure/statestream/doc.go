// Package statestream mirrors entity state from the MQTT topic tree
// published by Home Assistant's mqtt_statestream integration. It is an
// optional alternative to polling the REST API: retained messages rebuild
// the full picture on connect, and live updates keep it current.
package statestream
