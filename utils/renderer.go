package utils

import (
	"encoding/base64"
	"fmt"

	"aerocert/config"

	"github.com/go-resty/resty/v2"
)

// CertificatePayload is the structured document input handed to the renderer.
// Every field is a display string; callers fill fallback literals so the
// renderer never sees an empty required field.
type CertificatePayload struct {
	CertificateNumber string `json:"certificate_number"`
	TraineeName       string `json:"trainee_name"`
	EmployeeNumber    string `json:"employee_number"`
	ProgramTitle      string `json:"program_title"`
	ProgramCode       string `json:"program_code"`
	TotalHours        string `json:"total_hours"`
	JobCategoryName   string `json:"job_category_name"`
	AirportName       string `json:"airport_name"`
	IssueDate         string `json:"issue_date"`
	ExpiryDate        string `json:"expiry_date"`
	TheoreticalScore  string `json:"theoretical_score"`
	PracticalScore    string `json:"practical_score"`
	IssuerName        string `json:"issuer_name"`
	SignerName        string `json:"signer_name"`
	SignerImageURL    string `json:"signer_image_url"`
	Notes             string `json:"notes"`
}

// DocumentRenderer turns a certificate payload into a printable binary
// document. Rendering is deterministic for a given payload.
type DocumentRenderer interface {
	Render(payload CertificatePayload) ([]byte, error)
}

// RendererClient calls the document renderer service
type RendererClient struct {
	baseURL string
	client  *resty.Client
}

// NewRendererClient builds a renderer client from application configuration
func NewRendererClient() *RendererClient {
	return &RendererClient{
		baseURL: config.AppConfig.RendererApiURL,
		client:  resty.New(),
	}
}

// Render posts the payload to the renderer and returns the document bytes
func (r *RendererClient) Render(payload CertificatePayload) ([]byte, error) {
	resp, err := r.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(r.baseURL + "/render/certificate")
	if err != nil {
		return nil, fmt.Errorf("renderer request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("renderer failed with status %d: %s", resp.StatusCode(), resp.String())
	}
	if len(resp.Body()) == 0 {
		return nil, fmt.Errorf("renderer returned an empty document")
	}
	return resp.Body(), nil
}

// ToInlineDataURI encodes document bytes as a self-contained data URI, used
// when durable storage is unavailable
func ToInlineDataURI(data []byte) string {
	return "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(data)
}
