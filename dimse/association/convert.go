package association

import (
	"fmt"

	"github.com/codeninja55/go-radx/dimse/pdu"
)

// FromRequestPDU builds AssociationParameters from a decoded A-ASSOCIATE-RQ.
func FromRequestPDU(rq *pdu.AssociateRQ) (AssociationParameters, error) {
	if rq == nil {
		return AssociationParameters{}, fmt.Errorf("association: nil AssociateRQ")
	}

	roleBySOPClass := make(map[string]pdu.RoleSelectionItem, len(rq.UserInfo.RoleSelections))
	for _, rs := range rq.UserInfo.RoleSelections {
		roleBySOPClass[rs.SOPClassUID] = rs
	}

	pcs := make([]PresentationContext, 0, len(rq.PresentationContexts))
	for _, pc := range rq.PresentationContexts {
		entry := PresentationContext{
			ID:               pc.ID,
			AbstractSyntax:   pc.AbstractSyntax,
			TransferSyntaxes: append([]string(nil), pc.TransferSyntaxes...),
			SCURoleSupport:   true,
			SCPRoleSupport:   false,
		}
		if rs, ok := roleBySOPClass[pc.AbstractSyntax]; ok {
			entry.SCURoleSupport = rs.SCURole
			entry.SCPRoleSupport = rs.SCPRole
			entry.RoleSelectionPresent = true
		}
		pcs = append(pcs, entry)
	}

	params := AssociationParameters{
		CalledAETitle:             pdu.TrimAETitle(rq.CalledAETitle),
		CallingAETitle:            pdu.TrimAETitle(rq.CallingAETitle),
		PresentationContexts:      pcs,
		MaxPDULength:              rq.UserInfo.MaxPDULength,
		ImplementationClassUID:    rq.UserInfo.ImplementationClassUID,
		ImplementationVersionName: rq.UserInfo.ImplementationVersion,
		MaxOperationsInvoked:      DefaultMaxOperationsInvoked,
		MaxOperationsPerformed:    DefaultMaxOperationsPerformed,
	}
	if rq.UserInfo.AsyncOpsWindowPresent {
		params.MaxOperationsInvoked = rq.UserInfo.MaxOperationsInvoked
		params.MaxOperationsPerformed = rq.UserInfo.MaxOperationsPerformed
	}
	for _, en := range rq.UserInfo.ExtendedNegotiations {
		params.ExtendedNegotiations = append(params.ExtendedNegotiations, ExtendedNegotiation{
			SOPClassUID: en.SOPClassUID,
			Information: append([]byte(nil), en.Information...),
		})
	}
	if len(rq.UserInfo.CommonExtendedNegotiations) > 0 {
		params.CommonExtendedNegotiations = append([]byte(nil), rq.UserInfo.CommonExtendedNegotiations...)
	}
	if id := rq.UserInfo.UserIdentityRQ; id != nil {
		params.UserIdentity = &UserIdentity{
			Type:                      UserIdentityType(id.Type),
			Primary:                   append([]byte(nil), id.PrimaryField...),
			Secondary:                 append([]byte(nil), id.SecondaryField...),
			PositiveResponseRequested: id.PositiveResponseRequested,
		}
	}

	params = applyDefaults(params)
	if err := params.Validate(); err != nil {
		return AssociationParameters{}, fmt.Errorf("association: decoding A-ASSOCIATE-RQ: %w", err)
	}
	return params, nil
}

// FromAcceptPDU builds AssociationParameters from a decoded A-ASSOCIATE-AC,
// recovering the abstract syntax and role defaults the AC form omits from
// the AssociationParameters the request was built from.
func FromAcceptPDU(ac *pdu.AssociateAC, request AssociationParameters) (AssociationParameters, error) {
	if ac == nil {
		return AssociationParameters{}, fmt.Errorf("association: nil AssociateAC")
	}

	requestByID := make(map[uint8]PresentationContext, len(request.PresentationContexts))
	for _, pc := range request.PresentationContexts {
		requestByID[pc.ID] = pc
	}

	roleBySOPClass := make(map[string]pdu.RoleSelectionItem, len(ac.UserInfo.RoleSelections))
	for _, rs := range ac.UserInfo.RoleSelections {
		roleBySOPClass[rs.SOPClassUID] = rs
	}

	pcs := make([]PresentationContext, 0, len(ac.PresentationContexts))
	for _, pc := range ac.PresentationContexts {
		entry := PresentationContext{
			ID:     pc.ID,
			Result: PresentationContextResult(pc.Result),
		}
		if pc.TransferSyntax != "" {
			entry.TransferSyntaxes = []string{pc.TransferSyntax}
		}
		if req, ok := requestByID[pc.ID]; ok {
			entry.AbstractSyntax = req.AbstractSyntax
			entry.SCURoleSupport = req.SCURoleSupport
			entry.SCPRoleSupport = req.SCPRoleSupport
			entry.RoleSelectionPresent = req.RoleSelectionPresent
		}
		if rs, ok := roleBySOPClass[entry.AbstractSyntax]; ok {
			entry.SCURoleSupport = rs.SCURole
			entry.SCPRoleSupport = rs.SCPRole
			entry.RoleSelectionPresent = true
		}
		pcs = append(pcs, entry)
	}

	params := AssociationParameters{
		CalledAETitle:             pdu.TrimAETitle(ac.CalledAETitle),
		CallingAETitle:            pdu.TrimAETitle(ac.CallingAETitle),
		PresentationContexts:      pcs,
		MaxPDULength:              ac.UserInfo.MaxPDULength,
		ImplementationClassUID:    ac.UserInfo.ImplementationClassUID,
		ImplementationVersionName: ac.UserInfo.ImplementationVersion,
		MaxOperationsInvoked:      DefaultMaxOperationsInvoked,
		MaxOperationsPerformed:    DefaultMaxOperationsPerformed,
	}
	if ac.UserInfo.AsyncOpsWindowPresent {
		params.MaxOperationsInvoked = ac.UserInfo.MaxOperationsInvoked
		params.MaxOperationsPerformed = ac.UserInfo.MaxOperationsPerformed
	}
	for _, en := range ac.UserInfo.ExtendedNegotiations {
		params.ExtendedNegotiations = append(params.ExtendedNegotiations, ExtendedNegotiation{
			SOPClassUID: en.SOPClassUID,
			Information: append([]byte(nil), en.Information...),
		})
	}
	if ac.UserInfo.UserIdentityAC != nil {
		params.UserIdentity = &UserIdentity{
			ServerResponse: append([]byte(nil), ac.UserInfo.UserIdentityAC.ServerResponse...),
		}
	}

	params = applyDefaults(params)
	if err := params.Validate(); err != nil {
		return AssociationParameters{}, fmt.Errorf("association: decoding A-ASSOCIATE-AC: %w", err)
	}
	return params, nil
}

// ToRequestPDU encodes AssociationParameters as an A-ASSOCIATE-RQ, applying
// defaults for any implementation identity left unset by the caller.
func ToRequestPDU(p AssociationParameters) (*pdu.AssociateRQ, error) {
	p = applyDefaults(p)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	rq := &pdu.AssociateRQ{
		ProtocolVersion:    1,
		CalledAETitle:      pdu.PadAETitle(p.CalledAETitle),
		CallingAETitle:     pdu.PadAETitle(p.CallingAETitle),
		ApplicationContext: ApplicationContextName,
	}

	for _, pc := range p.PresentationContexts {
		if pc.AbstractSyntax == "" {
			return nil, fmt.Errorf("association: presentation context %d has no abstract syntax", pc.ID)
		}
		if len(pc.TransferSyntaxes) == 0 {
			return nil, fmt.Errorf("association: presentation context %d has no transfer syntaxes", pc.ID)
		}
		rq.PresentationContexts = append(rq.PresentationContexts, pdu.PresentationContextRQ{
			ID:               pc.ID,
			AbstractSyntax:   pc.AbstractSyntax,
			TransferSyntaxes: append([]string(nil), pc.TransferSyntaxes...),
		})
	}

	rq.UserInfo = buildUserInformation(p)
	for _, pc := range p.PresentationContexts {
		if !pc.RoleSelectionPresent {
			continue
		}
		rq.UserInfo.RoleSelections = append(rq.UserInfo.RoleSelections, pdu.RoleSelectionItem{
			SOPClassUID: pc.AbstractSyntax,
			SCURole:     pc.SCURoleSupport,
			SCPRole:     pc.SCPRoleSupport,
		})
	}

	if p.UserIdentity != nil && p.UserIdentity.Type != UserIdentityNone {
		rq.UserInfo.UserIdentityRQ = &pdu.UserIdentityRQItem{
			Type:                      uint8(p.UserIdentity.Type),
			PositiveResponseRequested: p.UserIdentity.PositiveResponseRequested,
			PrimaryField:              p.UserIdentity.Primary,
			SecondaryField:            p.UserIdentity.Secondary,
		}
	}
	rq.UserInfo.CommonExtendedNegotiations = p.CommonExtendedNegotiations

	return rq, nil
}

// ToAcceptPDU encodes AssociationParameters as an A-ASSOCIATE-AC in
// response to request. Each accepted presentation context carries exactly
// one transfer syntax (the caller's override, or the first one proposed in
// request); role selection is only emitted for contexts the requestor
// negotiated a role on.
func ToAcceptPDU(p AssociationParameters, request AssociationParameters) (*pdu.AssociateAC, error) {
	p = applyDefaults(p)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	requestByID := make(map[uint8]PresentationContext, len(request.PresentationContexts))
	for _, pc := range request.PresentationContexts {
		requestByID[pc.ID] = pc
	}

	ac := &pdu.AssociateAC{
		ProtocolVersion:    1,
		CalledAETitle:      pdu.PadAETitle(p.CalledAETitle),
		CallingAETitle:     pdu.PadAETitle(p.CallingAETitle),
		ApplicationContext: ApplicationContextName,
	}

	for _, pc := range p.PresentationContexts {
		ts := ""
		if len(pc.TransferSyntaxes) > 0 {
			ts = pc.TransferSyntaxes[0]
		} else if req, ok := requestByID[pc.ID]; ok && len(req.TransferSyntaxes) > 0 {
			ts = req.TransferSyntaxes[0]
		}
		ac.PresentationContexts = append(ac.PresentationContexts, pdu.PresentationContextAC{
			ID:             pc.ID,
			Result:         uint8(pc.Result),
			TransferSyntax: ts,
		})
	}

	ac.UserInfo = buildUserInformation(p)
	for _, pc := range p.PresentationContexts {
		req, ok := requestByID[pc.ID]
		if !ok || !req.RoleSelectionPresent {
			continue
		}
		ac.UserInfo.RoleSelections = append(ac.UserInfo.RoleSelections, pdu.RoleSelectionItem{
			SOPClassUID: req.AbstractSyntax,
			SCURole:     pc.SCURoleSupport,
			SCPRole:     pc.SCPRoleSupport,
		})
	}
	// SOP Class Common Extended Negotiation is not valid in an AC.

	if p.UserIdentity != nil && len(p.UserIdentity.ServerResponse) > 0 {
		ac.UserInfo.UserIdentityAC = &pdu.UserIdentityACItem{ServerResponse: p.UserIdentity.ServerResponse}
	}

	return ac, nil
}

// buildUserInformation assembles the sub-items common to both RQ and AC
// encoding: MaxLength, ImplementationClassUID, AsynchronousOperationsWindow,
// ImplementationVersionName and extended negotiations. RoleSelection is
// appended by the caller since its gating differs between RQ (one per
// context with roleSelectionPresent) and AC (gated on the request's
// roleSelectionPresent instead of the response's own).
func buildUserInformation(p AssociationParameters) pdu.UserInformation {
	ui := pdu.UserInformation{
		MaxPDULength:           p.MaxPDULength,
		ImplementationClassUID: p.ImplementationClassUID,
		ImplementationVersion:  p.ImplementationVersionName,
	}
	if p.MaxOperationsInvoked != 1 || p.MaxOperationsPerformed != 1 {
		ui.AsyncOpsWindowPresent = true
		ui.MaxOperationsInvoked = p.MaxOperationsInvoked
		ui.MaxOperationsPerformed = p.MaxOperationsPerformed
	}
	for _, en := range p.ExtendedNegotiations {
		ui.ExtendedNegotiations = append(ui.ExtendedNegotiations, pdu.ExtendedNegotiationItem{
			SOPClassUID: en.SOPClassUID,
			Information: en.Information,
		})
	}
	return ui
}
