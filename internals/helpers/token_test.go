package helper

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"specsnexus_backend/internals/configs"
)

func TestCreateAccessTokenClaims(t *testing.T) {
	configs.JWTSecret = "test-secret"

	signed, err := CreateAccessToken(42, "officer")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("parse: %v", err)
	}

	claims := token.Claims.(jwt.MapClaims)
	if claims["sub"] != "42" {
		t.Fatalf("sub = %v, want \"42\"", claims["sub"])
	}
	if claims["role"] != "officer" {
		t.Fatalf("role = %v", claims["role"])
	}

	exp := time.Unix(int64(claims["exp"].(float64)), 0)
	iat := time.Unix(int64(claims["iat"].(float64)), 0)
	if got := exp.Sub(iat); got != AccessTokenTTL {
		t.Fatalf("ttl = %v, want %v", got, AccessTokenTTL)
	}
}

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(101, Paging{Page: 2, PerPage: 25, Offset: 25, Limit: 25})
	if p.TotalPages != 5 || !p.HasNext || !p.HasPrev {
		t.Fatalf("pagination = %+v", p)
	}

	last := BuildPagination(101, Paging{Page: 5, PerPage: 25, Offset: 100, Limit: 25})
	if last.HasNext || !last.HasPrev {
		t.Fatalf("last page = %+v", last)
	}

	empty := BuildPagination(0, Paging{Page: 1, PerPage: 25})
	if empty.TotalPages != 0 || empty.HasNext || empty.HasPrev {
		t.Fatalf("empty = %+v", empty)
	}
}
