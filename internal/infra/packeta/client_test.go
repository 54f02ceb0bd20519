package packeta

import (
	"context"
	"encoding/base64"
	"encoding/xml"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(srvURL string) *Client {
	return NewClient(Config{
		BaseURL:     srvURL,
		APIPassword: "apipass",
		Eshop:       "myshop",
	})
}

func TestCreatePacket(t *testing.T) {
	var captured createPacketRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, xml.Unmarshal(body, &captured))
		_, _ = w.Write([]byte(`<response><status>ok</status><result><id>Z123</id><barcode>Z 123 456</barcode><barcodeText>Z123456</barcodeText></result></response>`))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	info, err := client.CreatePacket(context.Background(), PacketAttributes{
		Number:    "240100001",
		Name:      "Jana",
		Surname:   "Nova",
		Email:     "jana@example.com",
		AddressID: "1234",
		COD:       450,
		Value:     450,
		Currency:  "CZK",
	})

	require.NoError(t, err)
	assert.Equal(t, "Z123", info.ID)
	assert.Equal(t, "Z 123 456", info.Barcode)
	assert.Equal(t, "Z123456", info.BarcodeText)

	assert.Equal(t, "apipass", captured.APIPassword)
	assert.Equal(t, "myshop", captured.Attributes.Eshop)
	assert.Equal(t, int64(450), captured.Attributes.COD)
	assert.Equal(t, "1234", captured.Attributes.AddressID)
}

func TestCreatePacketFaultStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<response><status>fault</status></response>`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CreatePacket(context.Background(), PacketAttributes{Number: "x"})

	assert.Error(t, err)
}

func TestGetPacketStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<response><status>ok</status><result><statusCode>2</statusCode><codeText>ready for pickup</codeText><statusText>Ready for pickup</statusText></result></response>`))
	}))
	defer srv.Close()

	status, err := testClient(srv.URL).GetPacketStatus(context.Background(), "Z123")

	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, 2, status.Code)
	assert.Equal(t, "ready for pickup", status.Name)
	assert.Equal(t, "Ready for pickup", status.DisplayName)
}

func TestGetPacketStatusFailuresYieldNil(t *testing.T) {
	faulty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer faulty.Close()

	status, err := testClient(faulty.URL).GetPacketStatus(context.Background(), "Z123")
	assert.NoError(t, err)
	assert.Nil(t, status)

	fault := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<response><status>fault</status></response>`))
	}))
	defer fault.Close()

	status, err = testClient(fault.URL).GetPacketStatus(context.Background(), "Z123")
	assert.NoError(t, err)
	assert.Nil(t, status)
}

func TestGetPacketLabelsPDF(t *testing.T) {
	pdf := []byte("%PDF-1.4 label")
	encoded := base64.StdEncoding.EncodeToString(pdf)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<response><status>ok</status><result>` + encoded + `</result></response>`))
	}))
	defer srv.Close()

	out, err := testClient(srv.URL).GetPacketLabelsPDF(context.Background(), []string{"Z123"})

	require.NoError(t, err)
	assert.Equal(t, pdf, out)
}
