package domain

// Instance is the singleton server identity record, created on first boot.
// Its ID and name are advertised over mDNS so clients on the campsite LAN
// can discover the server without configuration.
type Instance struct {
	Record
	Name    string `json:"name"`
	Version string `json:"version"`
}
