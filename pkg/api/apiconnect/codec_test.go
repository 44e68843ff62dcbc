package apiconnect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/splitwallet/pkg/api"
)

func TestCodecPlainMessages(t *testing.T) {
	c := Codec{}
	assert.Equal(t, "json", c.Name())

	in := &api.CreatePaymentRequest{
		WalletID:     "w1",
		Amount:       900,
		Description:  "Dinner",
		Participants: []*api.Participant{{UserID: "a", Amount: 450}, {UserID: "b", Amount: 450}},
	}
	data, err := c.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"walletId":"w1"`)
	assert.NotContains(t, string(data), "participantIds")

	var out api.CreatePaymentRequest
	require.NoError(t, c.Unmarshal(data, &out))
	assert.Equal(t, in, &out)
}

func TestCodecProtoMessages(t *testing.T) {
	c := Codec{name: codecNameJSONCharsetUTF8}
	assert.Equal(t, "json; charset=utf-8", c.Name())

	data, err := c.Marshal(&emptypb.Empty{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))

	var empty emptypb.Empty
	assert.NoError(t, c.Unmarshal([]byte(`{}`), &empty))
	assert.NoError(t, c.Unmarshal(nil, &empty))
}

func TestCodecRejectsMalformedJSON(t *testing.T) {
	var out api.GetWalletRequest
	assert.Error(t, Codec{}.Unmarshal([]byte(`{"walletId":`), &out))
}
