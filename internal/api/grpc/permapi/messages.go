// Package permapi declares the healthperm.v1 gRPC services: their request and
// response messages, service descriptors and typed clients. Messages travel in
// deterministic CBOR under the "cbor" content-subtype.
package permapi

// Empty is the response of operations that only report success.
type Empty struct{}

// BoolResponse answers the boolean queries.
type BoolResponse struct {
	Value bool `cbor:"value"`
}

type OnboardUserRequest struct{}

type LinkDeviceRequest struct {
	DeviceID   string `cbor:"device_id"`
	DeviceType string `cbor:"device_type"`
}

type UnlinkDeviceRequest struct {
	DeviceID string `cbor:"device_id"`
}

type IsRegisteredUserRequest struct {
	Identity string `cbor:"identity"`
}

type IsRegisteredDeviceRequest struct {
	User     string `cbor:"user"`
	DeviceID string `cbor:"device_id"`
}

type GetDeviceRequest struct {
	User     string `cbor:"user"`
	DeviceID string `cbor:"device_id"`
}

type Device struct {
	Owner        string `cbor:"owner"`
	DeviceID     string `cbor:"device_id"`
	DeviceType   string `cbor:"device_type"`
	Registered   bool   `cbor:"registered"`
	RegisteredAt uint64 `cbor:"registered_at"`
}

type RegisterEntityRequest struct {
	Consumer     string `cbor:"consumer"`
	ConsumerType string `cbor:"consumer_type"`
}

type IsVerifiedEntityRequest struct {
	Consumer string `cbor:"consumer"`
}

type AuthorizeAccessRequest struct {
	Consumer string `cbor:"consumer"`
	Category string `cbor:"category"`
	// Expiry is the logical time at which the grant stops being effective; nil means no deadline.
	Expiry *uint64 `cbor:"expiry,omitempty"`
}

type RevokeAccessRequest struct {
	Consumer string `cbor:"consumer"`
	Category string `cbor:"category"`
}

type CheckAccessRequest struct {
	User     string `cbor:"user"`
	Consumer string `cbor:"consumer"`
	Category string `cbor:"category"`
}

type GetGrantRequest struct {
	User     string `cbor:"user"`
	Consumer string `cbor:"consumer"`
	Category string `cbor:"category"`
}

type Grant struct {
	User      string  `cbor:"user"`
	Consumer  string  `cbor:"consumer"`
	Category  string  `cbor:"category"`
	Granted   bool    `cbor:"granted"`
	Expiry    *uint64 `cbor:"expiry,omitempty"`
	GrantedAt uint64  `cbor:"granted_at"`
}

type LogAccessRequest struct {
	User     string `cbor:"user"`
	Consumer string `cbor:"consumer"`
	Category string `cbor:"category"`
	Purpose  string `cbor:"purpose"`
}

// RequestAccessRequest is sent by a consumer asking to read a user's category.
type RequestAccessRequest struct {
	User     string `cbor:"user"`
	Category string `cbor:"category"`
	Purpose  string `cbor:"purpose"`
}

type AccessIDResponse struct {
	AccessID uint64 `cbor:"access_id"`
}

type GetAuditEntryRequest struct {
	AccessID uint64 `cbor:"access_id"`
}

type AuditEntry struct {
	AccessID   uint64 `cbor:"access_id"`
	User       string `cbor:"user"`
	Consumer   string `cbor:"consumer"`
	Category   string `cbor:"category"`
	AccessTime uint64 `cbor:"access_time"`
	Purpose    string `cbor:"purpose"`
	PrevHash   string `cbor:"prev_hash"`
	Hash       string `cbor:"hash"`
}

type GetAuditEntryResponse struct {
	Found bool        `cbor:"found"`
	Entry *AuditEntry `cbor:"entry,omitempty"`
}

type GetLogCounterRequest struct{}

type CounterResponse struct {
	Counter uint64 `cbor:"counter"`
}

type ListUserAccessRequest struct {
	User string `cbor:"user"`
}

type ListUserAccessResponse struct {
	AccessIDs []uint64 `cbor:"access_ids"`
}

type VerifyChainRequest struct {
	From uint64 `cbor:"from"`
	To   uint64 `cbor:"to"`
}

type ChainReport struct {
	From     uint64 `cbor:"from"`
	To       uint64 `cbor:"to"`
	Checked  uint64 `cbor:"checked"`
	Valid    bool   `cbor:"valid"`
	BrokenAt uint64 `cbor:"broken_at"`
}

type ExportRangeRequest struct {
	From uint64 `cbor:"from"`
	To   uint64 `cbor:"to"`
}

type ExportRangeResponse struct {
	Key string `cbor:"key"`
}

type VerifyArchiveRequest struct {
	Key string `cbor:"key"`
}
