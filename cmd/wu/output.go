package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"wunderground/wu"
)

// emit prints v, or the value at --extract when set. Strings print bare,
// everything else as indented JSON.
func (a *app) emit(v any) error {
	if a.flags.extract != "" {
		v = wu.Extract(v, a.flags.extract)
	}
	if s, ok := v.(string); ok {
		_, err := fmt.Fprintln(a.out, s)
		return err
	}
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// checkResponse surfaces a service error envelope. With raiseErrors it is
// returned as an error; otherwise it is logged and the response still
// prints.
func (a *app) checkResponse(endpoint string, resp any) error {
	msg, err := a.client.ResponseError(resp)
	if err != nil {
		return err
	}
	if msg != "" {
		a.logger.Warn("service reported an error", "endpoint", endpoint, "error", msg)
	}
	return nil
}

// parseSets turns repeated key=value flags into options, in flag order.
func parseSets(sets []string) (*wu.Options, error) {
	opts := wu.NewOptions()
	for _, s := range sets {
		k, v, ok := strings.Cut(s, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --set %q: want key=value", s)
		}
		opts.Set(k, v)
	}
	return opts, nil
}

func joinQuery(args []string) string {
	return strings.Join(args, " ")
}
