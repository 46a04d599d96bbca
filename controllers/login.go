package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	u "github.com/Nwakakukaks/mont/utils"
)

// AuthCode : code and redirect uri to POST
type AuthCode struct {
	Code        string `json:"code"`
	RedirectURI string `json:"redirect_uri"`
}

// AccessTokenResponse : access token received from the auth provider
type AccessTokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
}

// ProfileResponse : profile as received from the auth provider
type ProfileResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// Claims : JWT claims stored on client side
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Login : API handler for logging in with an auth provider code
var Login = func(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		// Report the authenticated identity
		userID := GetUserID(w, r, true)
		if userID == "" {
			return
		}
		u.Respond(w, map[string]interface{}{"user_id": userID}, 200)
		return
	}

	// Get the auth code
	code := &AuthCode{}
	err := json.NewDecoder(r.Body).Decode(code)
	if err != nil {
		u.Respond(w, u.Message(false, err.Error()), 400)
		return
	}

	// Make request for access token
	authTemplate := "code=%s&redirect_uri=%s&grant_type=authorization_code"

	var body = []byte(fmt.Sprintf(authTemplate, code.Code, code.RedirectURI))
	req, err := http.NewRequest("POST", deps.OAuthURL, bytes.NewBuffer(body))
	if err != nil {
		u.Respond(w, u.Message(false, err.Error()), 500)
		return
	}
	req.Header.Set("Authorization", fmt.Sprintf("Basic %s", deps.AuthToken))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")

	// Fire request for access token
	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		deps.Log.WithError(err).Warn("token exchange failed")
		u.Respond(w, u.Message(false, err.Error()), 401)
		return
	}
	defer resp.Body.Close()

	// Ensure we got the access token
	if resp.StatusCode != 200 {
		u.Respond(w, u.Message(false, "Error"), resp.StatusCode)
		return
	}

	// Read the access token
	accessTokenResponse := &AccessTokenResponse{}
	err = json.NewDecoder(resp.Body).Decode(accessTokenResponse)
	if err != nil {
		deps.Log.WithError(err).Warn("decoding access token")
		u.Respond(w, u.Message(false, err.Error()), 500)
		return
	}

	// Make request for profile
	req, err = http.NewRequest("GET", deps.OAuthProfile, nil)
	if err != nil {
		u.Respond(w, u.Message(false, err.Error()), 500)
		return
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessTokenResponse.AccessToken))
	resp, err = client.Do(req)
	if err != nil {
		deps.Log.WithError(err).Warn("profile fetch failed")
		u.Respond(w, u.Message(false, err.Error()), 500)
		return
	}
	defer resp.Body.Close()

	// Read profile
	profileResponse := &ProfileResponse{}
	err = json.NewDecoder(resp.Body).Decode(profileResponse)
	if err != nil {
		deps.Log.WithError(err).Warn("decoding profile")
		u.Respond(w, u.Message(false, err.Error()), 500)
		return
	}

	// Set cookie
	SetCookie(w, profileResponse.ID)

	// Return profile
	u.Respond(w, profileResponse, 200)
}

// userIDFromCookie parses the JWT cookie and returns the claimed user id, or
// "" when the cookie is missing or invalid.
func userIDFromCookie(r *http.Request) (string, int) {
	c, err := r.Cookie("token")
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", http.StatusUnauthorized
		}
		return "", http.StatusBadRequest
	}

	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(c.Value, claims, func(token *jwt.Token) (interface{}, error) {
		return deps.JWTKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return "", http.StatusUnauthorized
		}
		return "", http.StatusBadRequest
	}
	if !tkn.Valid {
		return "", http.StatusUnauthorized
	}

	return claims.UserID, 0
}

// GetUserID : helper function to get the claimed user id from the JWT cookie
var GetUserID = func(w http.ResponseWriter, r *http.Request, throw bool) string {
	userID, status := userIDFromCookie(r)
	if userID == "" && throw {
		w.WriteHeader(status)
	}
	return userID
}

// Logout : API handler for logging out
var Logout = func(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:    "token",
		Value:   "",
		Expires: time.Unix(0, 0),
	})

	u.Respond(w, "", 204)
}

// SetCookie : helper function to set the JWT cookie
var SetCookie = func(w http.ResponseWriter, userID string) {
	expirationTime := time.Now().Add(24 * time.Hour)

	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(deps.JWTKey)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:    "token",
		Value:   tokenString,
		Expires: expirationTime,
	})
}
