// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataon

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/pdiddy/kisti-mcp/internal/provider"
)

// Strings is a field the catalog sends either as a string or as a list of
// strings. Order is preserved and blank entries are dropped.
type Strings []string

// UnmarshalJSON accepts null, a string, a number or an array of those.
func (s *Strings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}
	if data[0] != '[' {
		v, err := scalar(data)
		if err != nil {
			return err
		}
		*s = appendNonBlank(nil, v)
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Strings, 0, len(raw))
	for _, r := range raw {
		if bytes.Equal(bytes.TrimSpace(r), []byte("null")) {
			continue
		}
		v, err := scalar(r)
		if err != nil {
			return err
		}
		out = appendNonBlank(out, v)
	}
	*s = out
	return nil
}

// Join renders the values separated by ", ".
func (s Strings) Join() string { return strings.Join(s, ", ") }

// Head returns at most n values.
func (s Strings) Head(n int) Strings {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func scalar(data []byte) (string, error) {
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return "", err
		}
		return v, nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", errors.Newf("expected string or number, got %s", provider.Snippet(string(data), 40))
	}
	return n.String(), nil
}

func appendNonBlank(out Strings, v string) Strings {
	if v = strings.TrimSpace(v); v != "" {
		out = append(out, v)
	}
	return out
}

// Dataset is one catalog record.
type Dataset struct {
	SvcID       Strings `json:"svc_id"`
	Title       Strings `json:"dataset_title_kor"`
	Creators    Strings `json:"dataset_creator_kor"`
	Contributor Strings `json:"dataset_cntrbtr_kor"`
	Publishers  Strings `json:"dataset_pblshr"`
	Date        Strings `json:"dataset_pub_dt_pc"`
	Description Strings `json:"dataset_expl_kor"`
	Subjects    Strings `json:"dataset_kywd_kor"`
	Type        Strings `json:"dataset_type_pc"`
	Formats     Strings `json:"file_frmt_pc"`
	Rights      Strings `json:"dataset_cc_license_pc"`
	Coverage    Strings `json:"dataset_data_loc"`
	Relations   Strings `json:"pjt_nm_kor"`
	Language    Strings `json:"dataset_main_lang_pc"`
	DOI         Strings `json:"dataset_doi"`
	LandingPage Strings `json:"dataset_lndgpg"`
	Platform    Strings `json:"cltfm_kor"`
}

type envelope struct {
	Response struct {
		Status  string      `json:"status"`
		Message string      `json:"message"`
		Total   json.Number `json:"total count"`
	} `json:"response"`
	Records json.RawMessage `json:"records"`
}

func decode(body []byte) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, provider.Parse(provider.DataON, errors.Wrap(err, "decoding envelope"), body)
	}
	if env.Response.Status == "error" {
		return nil, provider.Upstream(provider.DataON, "", provider.FirstNonEmpty(env.Response.Message, "알 수 없는 오류"))
	}
	return &env, nil
}

// parseSearch reads a search envelope. A single object under records is
// treated as a one-element list.
func parseSearch(body []byte) (*ResultSet, error) {
	env, err := decode(body)
	if err != nil {
		return nil, err
	}

	rs := &ResultSet{}
	if n, err := env.Response.Total.Int64(); err == nil {
		rs.Total = int(n)
	}

	records := bytes.TrimSpace(env.Records)
	switch {
	case len(records) == 0 || bytes.Equal(records, []byte("null")):
	case records[0] == '{':
		var d Dataset
		if err := json.Unmarshal(records, &d); err != nil {
			return nil, provider.Parse(provider.DataON, errors.Wrap(err, "decoding record"), body)
		}
		rs.Records = []Dataset{d}
	default:
		if err := json.Unmarshal(records, &rs.Records); err != nil {
			return nil, provider.Parse(provider.DataON, errors.Wrap(err, "decoding records"), body)
		}
	}
	if rs.Total == 0 {
		rs.Total = len(rs.Records)
	}
	return rs, nil
}

// parseDetail reads a detail envelope, whose records is a single object.
func parseDetail(body []byte) (*Dataset, error) {
	env, err := decode(body)
	if err != nil {
		return nil, err
	}

	records := bytes.TrimSpace(env.Records)
	if len(records) == 0 || records[0] != '{' {
		return nil, notFound()
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(records, &fields); err != nil {
		return nil, provider.Parse(provider.DataON, errors.Wrap(err, "decoding record"), body)
	}
	if len(fields) == 0 {
		return nil, notFound()
	}

	var d Dataset
	if err := json.Unmarshal(records, &d); err != nil {
		return nil, provider.Parse(provider.DataON, errors.Wrap(err, "decoding record"), body)
	}
	return &d, nil
}

func notFound() error {
	return provider.NotFound(provider.DataON, "해당 svcId의 데이터를 찾을 수 없습니다")
}
