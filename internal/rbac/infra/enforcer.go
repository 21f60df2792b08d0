package infra

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

//go:embed model.conf
var modelText string

//go:embed policy.csv
var policyText string

// NewEnforcer builds an enforcer from the embedded role model and policy.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("load rbac model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	policies, groupings, err := parsePolicy(policyText)
	if err != nil {
		return nil, err
	}
	if len(policies) > 0 {
		if _, err := e.AddPolicies(policies); err != nil {
			return nil, fmt.Errorf("add policies: %w", err)
		}
	}
	if len(groupings) > 0 {
		if _, err := e.AddGroupingPolicies(groupings); err != nil {
			return nil, fmt.Errorf("add role inheritance: %w", err)
		}
	}

	return e, nil
}

func parsePolicy(text string) (policies [][]string, groupings [][]string, err error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comment = '#'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("parse rbac policy: %w", err)
		}
		if len(rec) < 2 {
			continue
		}
		switch strings.TrimSpace(rec[0]) {
		case "p":
			policies = append(policies, rec[1:])
		case "g":
			groupings = append(groupings, rec[1:])
		default:
			return nil, nil, fmt.Errorf("parse rbac policy: unknown section %q", rec[0])
		}
	}
	return policies, groupings, nil
}
