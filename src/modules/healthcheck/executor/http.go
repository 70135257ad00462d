package executor

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"sentrywatch/src/modules/shared"
	"sentrywatch/src/utils"
	"sentrywatch/src/version"
	"strconv"
	"strings"
	"time"

	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"

	"github.com/Azure/go-ntlmssp"
	"github.com/blues/jsonata-go"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/net/proxy"
)

func HTTPConfigStructLevelValidation(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(HTTPConfig)

	switch cfg.Encoding {
	case "json":
		if cfg.Body != "" {
			var js json.RawMessage
			if err := json.Unmarshal([]byte(cfg.Body), &js); err != nil {
				sl.ReportError(cfg.Body, "Body", "body", "json", "")
			}
		}
	case "form":
		if cfg.Body != "" {
			_, err := url.ParseQuery(cfg.Body)
			if err != nil {
				sl.ReportError(cfg.Body, "Body", "body", "form", "")
			}
		}
	case "xml":
		if cfg.Body != "" {
			if err := xml.Unmarshal([]byte(cfg.Body), new(interface{})); err != nil {
				sl.ReportError(cfg.Body, "Body", "body", "xml", "")
			}
		}
	case "text":
		// No validation needed
	}

	statusPattern := regexp.MustCompile(`^(\d+|\d[xX]{2}|\d+\s*-\s*\d+)$`)
	for _, code := range cfg.AcceptedStatusCodes {
		if !statusPattern.MatchString(strings.TrimSpace(code)) {
			sl.ReportError(cfg.AcceptedStatusCodes, "AcceptedStatusCodes", "accepted_statuscodes", "status_pattern", "")
		}
	}

	// Authentication validation
	switch cfg.AuthMethod {
	case "none":
		// No extra fields required
	case "basic":
		if cfg.BasicAuthUser == "" {
			sl.ReportError(cfg.BasicAuthUser, "BasicAuthUser", "basic_auth_user", "required_with_auth_basic", "")
		}
		if cfg.BasicAuthPass == "" {
			sl.ReportError(cfg.BasicAuthPass, "BasicAuthPass", "basic_auth_pass", "required_with_auth_basic", "")
		}
	case "ntlm":
		if cfg.BasicAuthUser == "" {
			sl.ReportError(cfg.BasicAuthUser, "BasicAuthUser", "basic_auth_user", "required_with_auth_ntlm", "")
		}
		if cfg.BasicAuthPass == "" {
			sl.ReportError(cfg.BasicAuthPass, "BasicAuthPass", "basic_auth_pass", "required_with_auth_ntlm", "")
		}
		if cfg.AuthDomain == "" {
			sl.ReportError(cfg.AuthDomain, "AuthDomain", "authDomain", "required_with_auth_ntlm", "")
		}
		if cfg.AuthWorkstation == "" {
			sl.ReportError(cfg.AuthWorkstation, "AuthWorkstation", "authWorkstation", "required_with_auth_ntlm", "")
		}
	case "oauth2-cc":
		if cfg.OauthAuthMethod != "client_secret_basic" && cfg.OauthAuthMethod != "client_secret_post" {
			sl.ReportError(cfg.OauthAuthMethod, "OauthAuthMethod", "oauth_auth_method", "oneof=client_secret_basic client_secret_post", "")
		}
		if cfg.OauthTokenUrl == "" {
			sl.ReportError(cfg.OauthTokenUrl, "OauthTokenUrl", "oauth_token_url", "required_with_auth_oauth2cc", "")
		} else {
			_, err := url.ParseRequestURI(cfg.OauthTokenUrl)
			if err != nil {
				sl.ReportError(cfg.OauthTokenUrl, "OauthTokenUrl", "oauth_token_url", "url", "")
			}
		}
		if cfg.OauthClientId == "" {
			sl.ReportError(cfg.OauthClientId, "OauthClientId", "oauth_client_id", "required_with_auth_oauth2cc", "")
		}
		if cfg.OauthClientSecret == "" {
			sl.ReportError(cfg.OauthClientSecret, "OauthClientSecret", "oauth_client_secret", "required_with_auth_oauth2cc", "")
		}
		// OauthScopes is optional
	case "mtls":
		if cfg.TlsCert == "" {
			sl.ReportError(cfg.TlsCert, "TlsCert", "tlsCert", "required_with_auth_mtls", "")
		}
		if cfg.TlsKey == "" {
			sl.ReportError(cfg.TlsKey, "TlsKey", "tlsKey", "required_with_auth_mtls", "")
		}
		if cfg.TlsCa == "" {
			sl.ReportError(cfg.TlsCa, "TlsCa", "tlsCa", "required_with_auth_mtls", "")
		}
	}
}

type HTTPConfig struct {
	Url string `json:"url" validate:"required,url"`

	Method              string   `json:"method" validate:"required,oneof=GET POST PUT DELETE PATCH HEAD OPTIONS"`
	Headers             string   `json:"headers" validate:"omitempty,json"`
	Encoding            string   `json:"encoding" validate:"required,oneof=json form xml text"`
	Body                string   `json:"body" validate:"omitempty"`
	AcceptedStatusCodes []string `json:"accepted_statuscodes" validate:"required,dive,required"`
	MaxRedirects        int      `json:"max_redirects" validate:"omitempty,min=0"`
	IgnoreTlsErrors     bool     `json:"ignore_tls_errors"`

	// Authentication fields
	AuthMethod        string `json:"authMethod" validate:"required,oneof=none basic oauth2-cc ntlm mtls"`
	BasicAuthUser     string `json:"basic_auth_user,omitempty"`
	BasicAuthPass     string `json:"basic_auth_pass,omitempty"`
	AuthDomain        string `json:"authDomain,omitempty"`
	AuthWorkstation   string `json:"authWorkstation,omitempty"`
	OauthAuthMethod   string `json:"oauth_auth_method,omitempty"`
	OauthTokenUrl     string `json:"oauth_token_url,omitempty"`
	OauthClientId     string `json:"oauth_client_id,omitempty"`
	OauthClientSecret string `json:"oauth_client_secret,omitempty"`
	OauthScopes       string `json:"oauth_scopes,omitempty"`
	TlsCert           string `json:"tlsCert,omitempty"`
	TlsKey            string `json:"tlsKey,omitempty"`
	TlsCa             string `json:"tlsCa,omitempty"`

	// Keyword/InvertKeyword back the "keyword" monitor type: UP iff the
	// response body contains Keyword, XOR InvertKeyword.
	Keyword       string `json:"keyword,omitempty"`
	InvertKeyword bool   `json:"invertKeyword,omitempty"`

	// JsonPath/ExpectedValue back the "json-query" monitor type: a JSONata
	// expression evaluated against the parsed response body.
	JsonPath      string `json:"jsonPath,omitempty"`
	ExpectedValue string `json:"expectedValue,omitempty"`
}

type HTTPExecutor struct {
	client *http.Client
	logger *zap.SugaredLogger
}

func NewHTTPExecutor(logger *zap.SugaredLogger) *HTTPExecutor {
	utils.Validate.RegisterStructValidation(HTTPConfigStructLevelValidation, HTTPConfig{})

	return &HTTPExecutor{
		client: &http.Client{},
		logger: logger,
	}
}

func (s *HTTPExecutor) Unmarshal(configJSON string) (any, error) {
	return GenericUnmarshal[HTTPConfig](configJSON)
}

func (s *HTTPExecutor) Validate(configJSON string) error {
	cfg, err := s.Unmarshal(configJSON)
	if err != nil {
		return err
	}
	return GenericValidator(cfg.(*HTTPConfig))
}

// isStatusAccepted checks a status code against the configured patterns.
// Each pattern is one of: an exact code ("200"), a class wildcard
// ("2xx"/"2XX"), or an inclusive range ("200-299").
func isStatusAccepted(statusCode int, accepted []string) bool {
	for _, pattern := range accepted {
		if matchesStatusPattern(statusCode, pattern) {
			return true
		}
	}
	return false
}

func matchesStatusPattern(statusCode int, pattern string) bool {
	pattern = strings.TrimSpace(pattern)

	if lo, hi, ok := strings.Cut(pattern, "-"); ok {
		low, err1 := strconv.Atoi(strings.TrimSpace(lo))
		high, err2 := strconv.Atoi(strings.TrimSpace(hi))
		if err1 == nil && err2 == nil {
			return statusCode >= low && statusCode <= high
		}
		return false
	}

	upper := strings.ToUpper(pattern)
	if len(upper) == 3 && (strings.HasSuffix(upper, "XX")) {
		class := upper[0:1]
		classNum, err := strconv.Atoi(class)
		if err != nil {
			return false
		}
		return statusCode/100 == classNum
	}

	code, err := strconv.Atoi(pattern)
	if err != nil {
		return false
	}
	return statusCode == code
}

func buildProxyTransport(base *http.Transport, proxyModel *Proxy) http.RoundTripper {
	if proxyModel == nil {
		return base
	}

	// Set default protocol if not specified
	protocol := proxyModel.Protocol
	if protocol == "" {
		protocol = "http"
	}

	switch protocol {
	case "http", "https":
		proxyURL := &url.URL{
			Scheme: protocol,
			Host:   fmt.Sprintf("%s:%d", proxyModel.Host, proxyModel.Port),
		}
		if proxyModel.Auth && proxyModel.Username != "" && proxyModel.Password != "" {
			proxyURL.User = url.UserPassword(proxyModel.Username, proxyModel.Password)
		}
		base.Proxy = http.ProxyURL(proxyURL)
		return base
	case "socks", "socks5", "socks5h", "socks4":
		var auth *proxy.Auth
		if proxyModel.Auth && proxyModel.Username != "" && proxyModel.Password != "" {
			auth = &proxy.Auth{
				User:     proxyModel.Username,
				Password: proxyModel.Password,
			}
		}
		address := fmt.Sprintf("%s:%d", proxyModel.Host, proxyModel.Port)
		dialer, err := proxy.SOCKS5("tcp", address, auth, proxy.Direct)
		if err != nil {
			// fallback to default transport if dialer fails
			return base
		}
		base.DialContext = func(ctx context.Context, network, addr string) (conn net.Conn, e error) {
			return dialer.Dial(network, addr)
		}
		base.Proxy = nil // No HTTP proxy
		return base
	default:
		return base
	}
}

func setDefaultHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Uptime-Kuma/"+version.Version)
	req.Header.Set("Accept", "*/*")
}

func (h *HTTPExecutor) Execute(ctx context.Context, m *Monitor, proxyModel *Proxy) *Result {
	cfgAny, err := h.Unmarshal(m.Config)
	if err != nil {
		return DownResult(err, time.Now().UTC(), time.Now().UTC())
	}
	cfg := cfgAny.(*HTTPConfig)

	h.logger.Debugf("execute http cfg: %+v", cfg)

	var bodyReader io.Reader
	if cfg.Body != "" {
		bodyReader = bytes.NewReader([]byte(cfg.Body))
	}

	req, err := http.NewRequestWithContext(ctx, cfg.Method, cfg.Url, bodyReader)
	if err != nil {
		return DownResult(err, time.Now().UTC(), time.Now().UTC())
	}
	setDefaultHeaders(req)

	if cfg.Headers != "" {
		headersMap := make(map[string]string)
		err := json.Unmarshal([]byte(cfg.Headers), &headersMap)
		if err != nil {
			return DownResult(fmt.Errorf("invalid headers json: %w", err), time.Now().UTC(), time.Now().UTC())
		}
		for k, v := range headersMap {
			req.Header.Set(k, v)
		}
	}

	// Determine effective max redirects value
	effectiveMaxRedirects := cfg.MaxRedirects

	checkRedirect := func(req *http.Request, via []*http.Request) error {
		h.logger.Debugf("checkRedirect: %d redirects followed, max allowed: %d", len(via), effectiveMaxRedirects)
		if effectiveMaxRedirects == 0 {
			return fmt.Errorf("redirects disabled: max_redirects set to 0")
		}
		if len(via) > effectiveMaxRedirects {
			return fmt.Errorf("too many redirects: followed %d redirects, maximum allowed is %d", len(via), effectiveMaxRedirects)
		}
		return nil
	}

	switch cfg.Encoding {
	case "json":
		req.Header.Set("Content-Type", "application/json")
	case "form":
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	case "xml":
		req.Header.Set("Content-Type", "application/xml")
	case "text":
		req.Header.Set("Content-Type", "text/plain")
	}

	// --- PROXY LOGIC ---

	// Default transport with proxy if needed
	baseTransport := &http.Transport{}

	// Configure TLS settings if needed
	if cfg.IgnoreTlsErrors {
		if baseTransport.TLSClientConfig == nil {
			baseTransport.TLSClientConfig = &tls.Config{}
		}
		baseTransport.TLSClientConfig.InsecureSkipVerify = true
	}

	transport := buildProxyTransport(baseTransport, proxyModel)

	// Set timeout from monitor configuration
	timeout := time.Duration(m.Timeout) * time.Second

	// --- AUTHENTICATION LOGIC ---
	switch cfg.AuthMethod {
	case "basic":
		req.SetBasicAuth(cfg.BasicAuthUser, cfg.BasicAuthPass)
	case "ntlm":
		// NTLM authentication using github.com/Azure/go-ntlmssp
		ntlmTransport := ntlmssp.Negotiator{
			RoundTripper: transport,
		}
		h.client = &http.Client{
			Transport:     &ntlmTransport,
			Timeout:       time.Duration(m.Timeout) * time.Second,
			CheckRedirect: checkRedirect,
		}

		if cfg.AuthDomain != "" {
			req.SetBasicAuth(cfg.AuthDomain+"\\"+cfg.BasicAuthUser, cfg.BasicAuthPass)
		} else {
			req.SetBasicAuth(cfg.BasicAuthUser, cfg.BasicAuthPass)
		}
	case "oauth2-cc":
		form := url.Values{}
		form.Set("grant_type", "client_credentials")
		if cfg.OauthScopes != "" {
			form.Set("scope", cfg.OauthScopes)
		}
		form.Set("client_id", cfg.OauthClientId)
		form.Set("client_secret", cfg.OauthClientSecret)

		tokenReq, err := http.NewRequestWithContext(ctx, "POST", cfg.OauthTokenUrl, strings.NewReader(form.Encode()))
		if err != nil {
			return DownResult(fmt.Errorf("failed to create oauth2 token request: %w", err), time.Now().UTC(), time.Now().UTC())
		}
		setDefaultHeaders(tokenReq)

		tokenReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if cfg.OauthAuthMethod == "client_secret_basic" {
			basic := base64.StdEncoding.EncodeToString([]byte(cfg.OauthClientId + ":" + cfg.OauthClientSecret))
			tokenReq.Header.Set("Authorization", "Basic "+basic)
		}

		tokenResp, err := http.DefaultClient.Do(tokenReq)
		if err != nil {
			return DownResult(fmt.Errorf("failed to get oauth2 token: %w", err), time.Now().UTC(), time.Now().UTC())
		}
		defer tokenResp.Body.Close()
		if tokenResp.StatusCode < 200 || tokenResp.StatusCode >= 300 {
			return DownResult(fmt.Errorf("oauth2 token endpoint returned status: %d", tokenResp.StatusCode), time.Now().UTC(), time.Now().UTC())
		}
		var tokenData struct {
			AccessToken string `json:"access_token"`
		}
		err = json.NewDecoder(tokenResp.Body).Decode(&tokenData)
		if err != nil || tokenData.AccessToken == "" {
			return DownResult(fmt.Errorf("failed to parse oauth2 token response: %w", err), time.Now().UTC(), time.Now().UTC())
		}
		req.Header.Set("Authorization", "Bearer "+tokenData.AccessToken)
	case "mtls":
		cert, err := tls.X509KeyPair([]byte(cfg.TlsCert), []byte(cfg.TlsKey))
		if err != nil {
			return DownResult(fmt.Errorf("invalid mTLS cert/key: %w", err), time.Now().UTC(), time.Now().UTC())
		}
		caCertPool := x509.NewCertPool()
		if ok := caCertPool.AppendCertsFromPEM([]byte(cfg.TlsCa)); !ok {
			return DownResult(fmt.Errorf("invalid mTLS CA cert"), time.Now().UTC(), time.Now().UTC())
		}
		mtlsTransport := &http.Transport{
			TLSClientConfig: &tls.Config{
				Certificates:       []tls.Certificate{cert},
				RootCAs:            caCertPool,
				InsecureSkipVerify: cfg.IgnoreTlsErrors,
			},
		}
		mtlsTransportWithProxy := buildProxyTransport(mtlsTransport, proxyModel)
		h.client = &http.Client{
			Transport:     mtlsTransportWithProxy,
			Timeout:       time.Duration(m.Timeout) * time.Second,
			CheckRedirect: checkRedirect,
		}
	}

	if cfg.AuthMethod != "mtls" && cfg.AuthMethod != "ntlm" {
		h.client = &http.Client{
			Timeout:       timeout,
			CheckRedirect: checkRedirect,
			Transport:     transport,
		}
	}

	// Set user agent and accept headers

	startTime := time.Now().UTC()
	resp, err := h.client.Do(req)
	endTime := time.Now().UTC()

	if err != nil {
		h.logger.Infof("HTTP request failed: %s, %s", m.Name, err.Error())
		return DownResult(err, startTime, endTime)
	}
	defer resp.Body.Close()

	h.logger.Infof("HTTP response status: %s, %d", m.Name, resp.StatusCode)

	var tlsInfo *shared.TlsInfo
	if resp.TLS != nil {
		tlsInfo = captureTlsInfo(resp.TLS)
	}

	if !isStatusAccepted(resp.StatusCode, cfg.AcceptedStatusCodes) {
		return &Result{
			Status:    shared.MonitorStatusDown,
			Message:   fmt.Sprintf("HTTP request failed with status: %d", resp.StatusCode),
			StartTime: startTime,
			EndTime:   endTime,
			TlsInfo:   tlsInfo,
		}
	}

	bodyBytes, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return &Result{
			Status:    shared.MonitorStatusDown,
			Message:   fmt.Sprintf("failed to read response body: %v", readErr),
			StartTime: startTime,
			EndTime:   endTime,
			TlsInfo:   tlsInfo,
		}
	}

	switch m.Type {
	case "keyword":
		present := strings.Contains(string(bodyBytes), cfg.Keyword)
		if present == cfg.InvertKeyword {
			state := "is present"
			if !present {
				state = "is not present"
			}
			return &Result{
				Status:    shared.MonitorStatusDown,
				Message:   fmt.Sprintf("keyword [%s] %s", cfg.Keyword, state),
				StartTime: startTime,
				EndTime:   endTime,
				TlsInfo:   tlsInfo,
			}
		}
		return &Result{
			Status:    shared.MonitorStatusUp,
			Message:   fmt.Sprintf("%d - %s, keyword check passed", resp.StatusCode, resp.Status),
			StartTime: startTime,
			EndTime:   endTime,
			TlsInfo:   tlsInfo,
		}
	case "json-query":
		var parsed interface{}
		if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
			return &Result{
				Status:    shared.MonitorStatusDown,
				Message:   fmt.Sprintf("failed to parse response as json: %v", err),
				StartTime: startTime,
				EndTime:   endTime,
				TlsInfo:   tlsInfo,
			}
		}
		expr, err := jsonata.Compile(cfg.JsonPath)
		if err != nil {
			return &Result{
				Status:    shared.MonitorStatusDown,
				Message:   fmt.Sprintf("invalid jsonata expression: %v", err),
				StartTime: startTime,
				EndTime:   endTime,
				TlsInfo:   tlsInfo,
			}
		}
		evaluated, err := expr.Eval(parsed)
		if err != nil {
			return &Result{
				Status:    shared.MonitorStatusDown,
				Message:   fmt.Sprintf("jsonata evaluation failed: %v", err),
				StartTime: startTime,
				EndTime:   endTime,
				TlsInfo:   tlsInfo,
			}
		}
		var resultStr string
		if evaluated != nil {
			resultStr = fmt.Sprintf("%v", evaluated)
		}
		if resultStr != cfg.ExpectedValue {
			return &Result{
				Status:    shared.MonitorStatusDown,
				Message:   fmt.Sprintf("jsonPath %q evaluated to %q, expected %q", cfg.JsonPath, resultStr, cfg.ExpectedValue),
				StartTime: startTime,
				EndTime:   endTime,
				TlsInfo:   tlsInfo,
			}
		}
		return &Result{
			Status:    shared.MonitorStatusUp,
			Message:   fmt.Sprintf("%d - %s, json query matched", resp.StatusCode, resp.Status),
			StartTime: startTime,
			EndTime:   endTime,
			TlsInfo:   tlsInfo,
		}
	}

	if m.CheckContentParameter {
		if down, msg := scanContentFields(bodyBytes); down {
			return &Result{
				Status:    shared.MonitorStatusDown,
				Message:   msg,
				StartTime: startTime,
				EndTime:   endTime,
				TlsInfo:   tlsInfo,
			}
		}
	}

	return &Result{
		Status:    shared.MonitorStatusUp,
		Message:   fmt.Sprintf("%d - %s", resp.StatusCode, resp.Status),
		StartTime: startTime,
		EndTime:   endTime,
		TlsInfo:   tlsInfo,
	}
}

// contentField is one *content-suffixed field collected by scanContentFields.
type contentField struct {
	path  string
	value interface{}
}

// scanContentFields implements the checkContentParameter probe: the body is
// treated as a JSON object/value, or as an SSE stream of "data: " frames
// (ignoring a trailing "[DONE]" sentinel), and every field whose key ends in
// "content" (case-insensitive) is collected recursively across objects and
// arrays. The probe goes DOWN only when at least one such field was found
// and every one of them is null.
func scanContentFields(body []byte) (down bool, msg string) {
	var fields []contentField

	if looksLikeSSE(body) {
		for _, line := range strings.Split(string(body), "\n") {
			line = strings.TrimSpace(strings.TrimRight(line, "\r"))
			if !strings.HasPrefix(line, "data: ") && !strings.HasPrefix(line, "data:") {
				continue
			}
			payload := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
			if payload == "[DONE]" {
				continue
			}
			var frame interface{}
			if err := json.Unmarshal([]byte(payload), &frame); err != nil {
				continue
			}
			collectContentFields(frame, "", &fields)
		}
	} else {
		var parsed interface{}
		if err := json.Unmarshal(body, &parsed); err != nil {
			return false, ""
		}
		collectContentFields(parsed, "", &fields)
	}

	if len(fields) == 0 {
		return false, ""
	}

	allNull := true
	paths := make([]string, 0, len(fields))
	for _, f := range fields {
		paths = append(paths, f.path)
		if f.value != nil {
			allNull = false
		}
	}
	if allNull {
		return true, fmt.Sprintf("all content fields are null: %s", strings.Join(paths, ", "))
	}
	return false, ""
}

func looksLikeSSE(body []byte) bool {
	for _, line := range strings.Split(string(body), "\n") {
		if strings.HasPrefix(strings.TrimSpace(strings.TrimRight(line, "\r")), "data:") {
			return true
		}
	}
	return false
}

func collectContentFields(node interface{}, path string, out *[]contentField) {
	switch v := node.(type) {
	case map[string]interface{}:
		for k, child := range v {
			childPath := k
			if path != "" {
				childPath = path + "." + k
			}
			if strings.HasSuffix(strings.ToLower(k), "content") {
				*out = append(*out, contentField{path: childPath, value: child})
			}
			collectContentFields(child, childPath, out)
		}
	case []interface{}:
		for i, child := range v {
			collectContentFields(child, fmt.Sprintf("%s[%d]", path, i), out)
		}
	}
}

// certType classifies a certificate as "root" (self-signed CA), "intermediate"
// or "leaf", mirroring the spec's per-cert certType field.
func certType(cert *x509.Certificate, isLeaf bool) string {
	if isLeaf {
		return "leaf"
	}
	if cert.IsCA && cert.Subject.String() == cert.Issuer.String() {
		return "root"
	}
	return "intermediate"
}

// captureTlsInfo builds the certificate chain info captured on a successful
// TLS handshake, leaf first, as verified by the standard library's peer
// certificate chain (no implementation-specific handshake hook needed).
func captureTlsInfo(state *tls.ConnectionState) *shared.TlsInfo {
	if len(state.PeerCertificates) == 0 {
		return nil
	}

	now := time.Now()
	certs := make([]shared.TlsCertInfo, len(state.PeerCertificates))
	for i, cert := range state.PeerCertificates {
		sum := sha256.Sum256(cert.Raw)
		daysRemaining := int(cert.NotAfter.Sub(now).Hours() / 24)
		certs[i] = shared.TlsCertInfo{
			SubjectCN:      cert.Subject.CommonName,
			CertType:       certType(cert, i == 0),
			Fingerprint256: fmt.Sprintf("%X", sum[:]),
			DaysRemaining:  daysRemaining,
			Valid:          now.After(cert.NotBefore) && now.Before(cert.NotAfter),
		}
	}
	for i := 0; i < len(certs)-1; i++ {
		certs[i].IssuerCertificate = &certs[i+1]
	}

	return &shared.TlsInfo{Certificates: certs}
}
