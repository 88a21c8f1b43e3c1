package port

// CapabilityManageOrders gates the admin order surface: listing and
// status mutation.
const CapabilityManageOrders = "orders:manage"

// AccessPayload is the capability set carried by an access token. Tokens are
// issued by the upstream auth service; this subsystem only verifies them.
type AccessPayload struct {
	Subject      string
	Capabilities []string
}

func (p *AccessPayload) Has(capability string) bool {
	for _, c := range p.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

//go:generate mockgen -source=access.go -destination=mock/access.go -package=mock
type AccessService interface {
	CreateToken(payload *AccessPayload) (string, error)
	VerifyToken(token string) (*AccessPayload, error)
}
