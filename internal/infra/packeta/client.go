package packeta

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Config struct {
	BaseURL     string
	APIPassword string
	Eshop       string
}

// Client talks to the Packeta XML API over HTTP POST.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

type PacketAttributes struct {
	Number    string
	Name      string
	Surname   string
	Email     string
	AddressID string
	// COD and value in whole currency units.
	COD      int64
	Value    int64
	WeightKg float64
	Currency string
}

type createPacketRequest struct {
	XMLName     xml.Name         `xml:"createPacket"`
	APIPassword string           `xml:"apiPassword"`
	Attributes  packetAttributes `xml:"packetAttributes"`
}

type packetAttributes struct {
	Number    string  `xml:"number"`
	Name      string  `xml:"name"`
	Surname   string  `xml:"surname"`
	Email     string  `xml:"email"`
	AddressID string  `xml:"addressId"`
	COD       int64   `xml:"cod"`
	Value     int64   `xml:"value"`
	Weight    float64 `xml:"weight,omitempty"`
	Currency  string  `xml:"currency,omitempty"`
	Eshop     string  `xml:"eshop"`
}

type packetStatusRequest struct {
	XMLName     xml.Name `xml:"packetStatus"`
	APIPassword string   `xml:"apiPassword"`
	PacketID    string   `xml:"packetId"`
}

type labelsRequest struct {
	XMLName     xml.Name `xml:"packetsLabelsPdf"`
	APIPassword string   `xml:"apiPassword"`
	PacketIDs   []string `xml:"packetIds>id"`
	Format      string   `xml:"format"`
	Offset      int      `xml:"offset"`
}

type apiResponse struct {
	XMLName xml.Name  `xml:"response"`
	Status  string    `xml:"status"`
	Result  apiResult `xml:"result"`
}

type apiResult struct {
	ID          string `xml:"id"`
	Barcode     string `xml:"barcode"`
	BarcodeText string `xml:"barcodeText"`
	StatusCode  int    `xml:"statusCode"`
	CodeText    string `xml:"codeText"`
	StatusText  string `xml:"statusText"`
	// packetsLabelsPdf returns the base64 PDF directly in <result>.
	Raw string `xml:",chardata"`
}

type PacketInfo struct {
	ID          string
	Barcode     string
	BarcodeText string
}

type PacketStatus struct {
	Code        int
	Name        string
	DisplayName string
}

func (c *Client) post(ctx context.Context, payload interface{}) (*apiResponse, error) {
	raw, err := xml.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/xml")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("packeta request failed: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed apiResponse
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("packeta response parse: %w", err)
	}
	return &parsed, nil
}

func (c *Client) CreatePacket(ctx context.Context, attrs PacketAttributes) (*PacketInfo, error) {
	resp, err := c.post(ctx, createPacketRequest{
		APIPassword: c.cfg.APIPassword,
		Attributes: packetAttributes{
			Number:    attrs.Number,
			Name:      attrs.Name,
			Surname:   attrs.Surname,
			Email:     attrs.Email,
			AddressID: attrs.AddressID,
			COD:       attrs.COD,
			Value:     attrs.Value,
			Weight:    attrs.WeightKg,
			Currency:  attrs.Currency,
			Eshop:     c.cfg.Eshop,
		},
	})
	if err != nil {
		return nil, err
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("packeta createPacket status: %s", resp.Status)
	}
	return &PacketInfo{
		ID:          resp.Result.ID,
		Barcode:     resp.Result.Barcode,
		BarcodeText: resp.Result.BarcodeText,
	}, nil
}

// GetPacketStatus polls the carrier. Any transport failure, non-200 or
// malformed body yields (nil, nil); status polling is best-effort.
func (c *Client) GetPacketStatus(ctx context.Context, packetID string) (*PacketStatus, error) {
	resp, err := c.post(ctx, packetStatusRequest{
		APIPassword: c.cfg.APIPassword,
		PacketID:    packetID,
	})
	if err != nil || resp.Status != "ok" {
		return nil, nil
	}
	return &PacketStatus{
		Code:        resp.Result.StatusCode,
		Name:        resp.Result.CodeText,
		DisplayName: resp.Result.StatusText,
	}, nil
}

// GetPacketLabelsPDF fetches a printable label sheet for the given packets.
func (c *Client) GetPacketLabelsPDF(ctx context.Context, packetIDs []string) ([]byte, error) {
	resp, err := c.post(ctx, labelsRequest{
		APIPassword: c.cfg.APIPassword,
		PacketIDs:   packetIDs,
		Format:      "A7 on A4",
		Offset:      0,
	})
	if err != nil {
		return nil, err
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("packeta packetsLabelsPdf status: %s", resp.Status)
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(resp.Result.Raw))
}
