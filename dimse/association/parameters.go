// Package association models the negotiated parameters of a DICOM upper
// layer association: the presentation contexts proposed or accepted and the
// user-information sub-items exchanged in A-ASSOCIATE-RQ/AC PDUs.
package association

import (
	"fmt"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"

	"github.com/codeninja55/go-radx/dicom/uid"
)

// Defaults applied to AssociationParameters when left unset by the caller.
const (
	DefaultMaxPDULength              uint32 = 16384
	DefaultImplementationClassUID           = "1.2.250.1.119.1.1.1.1.1.1.36"
	DefaultImplementationVersionName        = "EMDL 1.0"
	DefaultMaxOperationsInvoked       uint16 = 1
	DefaultMaxOperationsPerformed     uint16 = 1
)

// ApplicationContextName is the fixed DICOM application context negotiated
// on every association.
const ApplicationContextName = "1.2.840.10008.3.1.1.1"

// PresentationContextResult is the outcome of negotiating a presentation
// context, carried on an A-ASSOCIATE-AC.
type PresentationContextResult uint8

const (
	ResultAcceptance                   PresentationContextResult = 0
	ResultUserRejection                PresentationContextResult = 1
	ResultNoReason                     PresentationContextResult = 2
	ResultAbstractSyntaxNotSupported   PresentationContextResult = 3
	ResultTransferSyntaxesNotSupported PresentationContextResult = 4
)

func (r PresentationContextResult) String() string {
	switch r {
	case ResultAcceptance:
		return "Acceptance"
	case ResultUserRejection:
		return "UserRejection"
	case ResultNoReason:
		return "NoReason"
	case ResultAbstractSyntaxNotSupported:
		return "AbstractSyntaxNotSupported"
	case ResultTransferSyntaxesNotSupported:
		return "TransferSyntaxesNotSupported"
	default:
		return fmt.Sprintf("PresentationContextResult(%d)", uint8(r))
	}
}

// UserIdentityType selects the form of requestor identity negotiated by a
// UserIdentityRQ sub-item.
type UserIdentityType uint8

const (
	UserIdentityNone                 UserIdentityType = 0
	UserIdentityUsername             UserIdentityType = 1
	UserIdentityUsernameAndPassword  UserIdentityType = 2
	UserIdentityKerberos             UserIdentityType = 3
	UserIdentitySAML                 UserIdentityType = 4
)

// PresentationContext is the pure value form of a presentation context, used
// for both the RQ (list of transfer syntaxes, no result) and AC (one
// transfer syntax, meaningful result) shapes.
type PresentationContext struct {
	ID                   uint8  `validate:"required,pcid"`
	AbstractSyntax       string `validate:"omitempty,dicomuid"`
	TransferSyntaxes     []string `validate:"omitempty,dive,dicomuid"`
	SCURoleSupport       bool
	SCPRoleSupport       bool
	RoleSelectionPresent bool
	Result               PresentationContextResult
}

// ExtendedNegotiation carries a SOP-class-specific negotiation payload whose
// layout is defined per SOP class.
type ExtendedNegotiation struct {
	SOPClassUID string `validate:"required,dicomuid"`
	Information []byte
}

// UserIdentity negotiates the requestor's identity and, on the AC side,
// carries the acceptor's response.
type UserIdentity struct {
	Type                      UserIdentityType `validate:"gte=0,lte=4"`
	Primary                   []byte
	Secondary                 []byte
	PositiveResponseRequested bool
	ServerResponse            []byte
}

// AssociationParameters is a pure value record bridging A-ASSOCIATE-RQ and
// A-ASSOCIATE-AC PDUs: everything negotiated over the course of an
// association that is not itself PDU wire format.
type AssociationParameters struct {
	CalledAETitle  string `validate:"required,max=16"`
	CallingAETitle string `validate:"required,max=16"`

	PresentationContexts []PresentationContext `validate:"omitempty,dive"`

	MaxPDULength              uint32
	ImplementationClassUID    string `validate:"omitempty,dicomuid"`
	ImplementationVersionName string `validate:"omitempty,max=16"`

	MaxOperationsInvoked   uint16
	MaxOperationsPerformed uint16

	ExtendedNegotiations       []ExtendedNegotiation `validate:"omitempty,dive"`
	CommonExtendedNegotiations []byte

	UserIdentity *UserIdentity
}

var defaultParameters = AssociationParameters{
	MaxPDULength:              DefaultMaxPDULength,
	ImplementationClassUID:    DefaultImplementationClassUID,
	ImplementationVersionName: DefaultImplementationVersionName,
	MaxOperationsInvoked:      DefaultMaxOperationsInvoked,
	MaxOperationsPerformed:    DefaultMaxOperationsPerformed,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("dicomuid", func(fl validator.FieldLevel) bool {
		return uid.IsValid(fl.Field().String())
	})
	_ = v.RegisterValidation("pcid", func(fl validator.FieldLevel) bool {
		id := fl.Field().Uint()
		return id > 0 && id <= 255 && id%2 == 1
	})
	return v
}

// applyDefaults fills zero-valued fields of p from defaultParameters. Caller
// supplied values are always preserved since mergo only merges into empty
// destination fields.
func applyDefaults(p AssociationParameters) AssociationParameters {
	if err := mergo.Merge(&p, defaultParameters); err != nil {
		if p.MaxPDULength == 0 {
			p.MaxPDULength = DefaultMaxPDULength
		}
		if p.ImplementationClassUID == "" {
			p.ImplementationClassUID = DefaultImplementationClassUID
		}
		if p.ImplementationVersionName == "" {
			p.ImplementationVersionName = DefaultImplementationVersionName
		}
		if p.MaxOperationsInvoked == 0 {
			p.MaxOperationsInvoked = DefaultMaxOperationsInvoked
		}
		if p.MaxOperationsPerformed == 0 {
			p.MaxOperationsPerformed = DefaultMaxOperationsPerformed
		}
	}
	return p
}

// Validate checks AssociationParameters against the struct-tag rules above:
// AE title lengths, UID syntax and presentation-context id parity.
func (p AssociationParameters) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("association: invalid parameters: %w", err)
	}
	return nil
}
