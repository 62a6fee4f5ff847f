package association_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeninja55/go-radx/dimse/association"
	"github.com/codeninja55/go-radx/dimse/pdu"
)

func verificationRequest() association.AssociationParameters {
	return association.AssociationParameters{
		CalledAETitle:  "STORE_SCP",
		CallingAETitle: "STORE_SCU",
		PresentationContexts: []association.PresentationContext{
			{
				ID:             1,
				AbstractSyntax: "1.2.840.10008.1.1",
				TransferSyntaxes: []string{
					"1.2.840.10008.1.2",
					"1.2.840.10008.1.2.1",
				},
			},
		},
	}
}

func TestToRequestPDU_AppliesDefaults(t *testing.T) {
	params := verificationRequest()

	rq, err := association.ToRequestPDU(params)
	require.NoError(t, err)

	assert.Equal(t, uint16(1), rq.ProtocolVersion)
	assert.Equal(t, association.ApplicationContextName, rq.ApplicationContext)
	assert.Equal(t, "STORE_SCP", pdu.TrimAETitle(rq.CalledAETitle))
	assert.Equal(t, "STORE_SCU", pdu.TrimAETitle(rq.CallingAETitle))
	require.Len(t, rq.PresentationContexts, 1)
	assert.Equal(t, uint8(1), rq.PresentationContexts[0].ID)
	assert.Equal(t, uint32(association.DefaultMaxPDULength), rq.UserInfo.MaxPDULength)
	assert.Equal(t, association.DefaultImplementationClassUID, rq.UserInfo.ImplementationClassUID)
	assert.Equal(t, association.DefaultImplementationVersionName, rq.UserInfo.ImplementationVersion)
	assert.False(t, rq.UserInfo.AsyncOpsWindowPresent)
}

func TestRequestPDU_RoundTrip(t *testing.T) {
	params := verificationRequest()
	params.PresentationContexts[0].SCURoleSupport = true
	params.PresentationContexts[0].SCPRoleSupport = true
	params.PresentationContexts[0].RoleSelectionPresent = true

	rq, err := association.ToRequestPDU(params)
	require.NoError(t, err)

	decoded, err := association.FromRequestPDU(rq)
	require.NoError(t, err)

	assert.Equal(t, params.CalledAETitle, decoded.CalledAETitle)
	assert.Equal(t, params.CallingAETitle, decoded.CallingAETitle)
	require.Len(t, decoded.PresentationContexts, 1)
	pc := decoded.PresentationContexts[0]
	assert.Equal(t, params.PresentationContexts[0].AbstractSyntax, pc.AbstractSyntax)
	assert.True(t, pc.RoleSelectionPresent)
	assert.True(t, pc.SCURoleSupport)
	assert.True(t, pc.SCPRoleSupport)
	assert.Equal(t, uint16(1), decoded.MaxOperationsInvoked)
	assert.Equal(t, uint16(1), decoded.MaxOperationsPerformed)
}

func TestFromRequestPDU_DefaultRoleWithoutSelection(t *testing.T) {
	rq := &pdu.AssociateRQ{
		CalledAETitle:      pdu.PadAETitle("SCP"),
		CallingAETitle:     pdu.PadAETitle("SCU"),
		ApplicationContext: association.ApplicationContextName,
		PresentationContexts: []pdu.PresentationContextRQ{
			{ID: 1, AbstractSyntax: "1.2.840.10008.1.1", TransferSyntaxes: []string{"1.2.840.10008.1.2"}},
		},
	}

	params, err := association.FromRequestPDU(rq)
	require.NoError(t, err)
	require.Len(t, params.PresentationContexts, 1)
	pc := params.PresentationContexts[0]
	assert.True(t, pc.SCURoleSupport)
	assert.False(t, pc.SCPRoleSupport)
	assert.False(t, pc.RoleSelectionPresent)
}

func TestToAcceptPDU_UsesFirstRequestTransferSyntaxWhenUnset(t *testing.T) {
	request := verificationRequest()

	accept := association.AssociationParameters{
		CalledAETitle:  request.CalledAETitle,
		CallingAETitle: request.CallingAETitle,
		PresentationContexts: []association.PresentationContext{
			{ID: 1, Result: association.ResultAcceptance},
		},
	}

	ac, err := association.ToAcceptPDU(accept, request)
	require.NoError(t, err)
	require.Len(t, ac.PresentationContexts, 1)
	assert.Equal(t, "1.2.840.10008.1.2", ac.PresentationContexts[0].TransferSyntax)
	assert.Equal(t, uint8(association.ResultAcceptance), ac.PresentationContexts[0].Result)
}

func TestAcceptPDU_RoundTripRecoversAbstractSyntax(t *testing.T) {
	request := verificationRequest()
	request.PresentationContexts[0].RoleSelectionPresent = true
	request.PresentationContexts[0].SCURoleSupport = true
	request.PresentationContexts[0].SCPRoleSupport = true

	accept := association.AssociationParameters{
		CalledAETitle:  request.CalledAETitle,
		CallingAETitle: request.CallingAETitle,
		PresentationContexts: []association.PresentationContext{
			{
				ID:                   1,
				TransferSyntaxes:     []string{"1.2.840.10008.1.2"},
				Result:               association.ResultAcceptance,
				SCURoleSupport:       true,
				SCPRoleSupport:       true,
				RoleSelectionPresent: true,
			},
		},
	}

	ac, err := association.ToAcceptPDU(accept, request)
	require.NoError(t, err)

	decoded, err := association.FromAcceptPDU(ac, request)
	require.NoError(t, err)

	require.Len(t, decoded.PresentationContexts, 1)
	pc := decoded.PresentationContexts[0]
	assert.Equal(t, "1.2.840.10008.1.1", pc.AbstractSyntax)
	assert.Equal(t, association.ResultAcceptance, pc.Result)
	assert.True(t, pc.RoleSelectionPresent)
}

func TestToRequestPDU_RejectsMissingAbstractSyntax(t *testing.T) {
	params := association.AssociationParameters{
		CalledAETitle:  "SCP",
		CallingAETitle: "SCU",
		PresentationContexts: []association.PresentationContext{
			{ID: 1, TransferSyntaxes: []string{"1.2.840.10008.1.2"}},
		},
	}

	_, err := association.ToRequestPDU(params)
	assert.Error(t, err)
}

func TestValidate_RejectsEvenPresentationContextID(t *testing.T) {
	params := verificationRequest()
	params.PresentationContexts[0].ID = 2

	err := params.Validate()
	assert.Error(t, err)
}

func TestValidate_RejectsOversizeAETitle(t *testing.T) {
	params := verificationRequest()
	params.CalledAETitle = "THIS_AE_TITLE_IS_WAY_TOO_LONG"

	err := params.Validate()
	assert.Error(t, err)
}

func TestUserIdentityRoundTrip(t *testing.T) {
	params := verificationRequest()
	params.UserIdentity = &association.UserIdentity{
		Type:                      association.UserIdentityUsernameAndPassword,
		Primary:                   []byte("alice"),
		Secondary:                 []byte("hunter2"),
		PositiveResponseRequested: true,
	}

	rq, err := association.ToRequestPDU(params)
	require.NoError(t, err)
	require.NotNil(t, rq.UserInfo.UserIdentityRQ)

	decoded, err := association.FromRequestPDU(rq)
	require.NoError(t, err)
	require.NotNil(t, decoded.UserIdentity)
	assert.Equal(t, association.UserIdentityUsernameAndPassword, decoded.UserIdentity.Type)
	assert.Equal(t, []byte("alice"), decoded.UserIdentity.Primary)
	assert.Equal(t, []byte("hunter2"), decoded.UserIdentity.Secondary)
	assert.True(t, decoded.UserIdentity.PositiveResponseRequested)
}
