package mapper

import (
	"time"

	staffdomain "github.com/firaolassefa/restaurant-management-system/internal/domains/staff/domain"
	staffports "github.com/firaolassefa/restaurant-management-system/internal/domains/staff/ports"
	"github.com/firaolassefa/restaurant-management-system/internal/shared/identity"
)

// Member is the transport shape of a staff member. The password hash never leaves the service.
type Member struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
	Position string `json:"position"`
	Active   bool   `json:"active"`
}

type MemberInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
	Position string `json:"position,omitempty"`
}

type MemberPatch struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
	Position *string `json:"position,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Member    Member    `json:"member"`
}

// Me describes the caller as resolved from their token.
type Me struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func ToNewMember(in MemberInput) (staffports.NewMember, error) {
	role, err := staffdomain.ParseRole(in.Role)
	if err != nil {
		return staffports.NewMember{}, err
	}
	position, err := staffdomain.ParsePosition(in.Position)
	if err != nil {
		return staffports.NewMember{}, err
	}
	return staffports.NewMember{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: in.Password,
		Role:     role,
		Position: position,
	}, nil
}

func ToDomainPatch(in MemberPatch) (staffdomain.Patch, error) {
	patch := staffdomain.Patch{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: in.Password,
		Active:   in.Active,
	}
	if in.Role != nil {
		role, err := staffdomain.ParseRole(*in.Role)
		if err != nil {
			return staffdomain.Patch{}, err
		}
		patch.Role = &role
	}
	if in.Position != nil {
		position, err := staffdomain.ParsePosition(*in.Position)
		if err != nil {
			return staffdomain.Patch{}, err
		}
		patch.Position = &position
	}
	return patch, nil
}

func FromDomainMember(m *staffdomain.Member) Member {
	if m == nil {
		return Member{}
	}
	return Member{
		ID:       m.ID,
		Name:     m.Name,
		Email:    m.Email,
		Phone:    m.Phone,
		Role:     string(m.Role),
		Position: string(m.Position),
		Active:   m.Active,
	}
}

func FromDomainMembers(members []*staffdomain.Member) []Member {
	out := make([]Member, 0, len(members))
	for _, m := range members {
		out = append(out, FromDomainMember(m))
	}
	return out
}

func FromToken(token *staffports.Token) LoginResponse {
	if token == nil {
		return LoginResponse{}
	}
	return LoginResponse{Token: token.Value, ExpiresAt: token.ExpiresAt, Member: FromDomainMember(token.Member)}
}

func FromIdentity(id identity.Identity) Me {
	return Me{ID: id.ID, Name: id.Name, Email: id.Email, Role: string(id.Role)}
}
