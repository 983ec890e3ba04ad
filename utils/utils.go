// Package utils provides shared helpers for the dailyflo service:
// allowed-user parsing, rate limiting, and HTTP fetch utilities.
package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/badoux/checkmail"
	"github.com/go-resty/resty/v2"
)

// ParseAllowedUsers parses a comma-separated list of allowed users in
// the format "username:password". Usernames that look like email
// addresses must be well-formed. Returns the account map plus a
// loggable string with passwords hidden.
func ParseAllowedUsers(users string) (map[string]string, string) {
	parsedUsers := make(map[string]string)
	hidden := make([]string, 0, 4)
	for _, user := range strings.Split(users, ",") {
		parts := strings.Split(user, ":")
		if len(parts) != 2 {
			log.Fatalf("Invalid user format: %s. Expected 'username:password'", user)
		}
		if strings.Contains(parts[0], "@") {
			if err := checkmail.ValidateFormat(parts[0]); err != nil {
				log.Fatalf("Invalid email username %s: %v", parts[0], err)
			}
		}
		parsedUsers[parts[0]] = parts[1]
		hidden = append(hidden, fmt.Sprintf("%s:%s", parts[0], "<hidden>"))
	}
	return parsedUsers, strings.Join(hidden, ", ")
}

// FetchWithBasicAuth makes an HTTP GET request with Basic Auth and
// returns the parsed JSON as a dynamic structure. Used to read back
// delivery status from the Mailjet message API.
func FetchWithBasicAuth(url, username, password string) (interface{}, error) {
	client := resty.New()

	resp, err := client.R().
		SetBasicAuth(username, password).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("error making HTTP request to %s: %w", url, err)
	}

	var result interface{}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("error unmarshalling JSON: %w", err)
	}
	return result, nil
}
