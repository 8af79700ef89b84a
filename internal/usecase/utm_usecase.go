package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"gharplans/internal/domain/model"
	repo "gharplans/internal/repository"
)

var errInvalidBaseURL = errors.New("baseUrl must be an absolute http(s) URL")

type UTMUsecase struct {
	utmRepo repo.UTMLinkRepository
}

func NewUTMUsecase(utmRepo repo.UTMLinkRepository) *UTMUsecase {
	return &UTMUsecase{utmRepo: utmRepo}
}

type CreateUTMInput struct {
	BaseURL    string
	Source     string
	Medium     string
	Campaign   string
	CouponCode string
}

type ListUTMInput struct {
	ID         *int64
	Source     string
	CouponCode string
	Offset     int
	Limit      int
}

func (u *UTMUsecase) CreateLink(ctx context.Context, in CreateUTMInput) (model.UTMLink, error) {
	base := strings.TrimSpace(in.BaseURL)
	source := strings.TrimSpace(in.Source)
	medium := strings.TrimSpace(in.Medium)
	campaign := strings.TrimSpace(in.Campaign)
	coupon := strings.TrimSpace(in.CouponCode)

	if base == "" || source == "" || medium == "" || campaign == "" {
		return model.UTMLink{}, NewHTTPError(http.StatusBadRequest, "baseUrl, source, medium and campaign are required")
	}

	utmURL, err := BuildUTMURL(base, source, medium, campaign, coupon)
	if err != nil {
		return model.UTMLink{}, NewHTTPError(http.StatusBadRequest, "invalid baseUrl")
	}

	link := model.UTMLink{
		BaseURL:  base,
		Source:   source,
		Medium:   medium,
		Campaign: campaign,
		UTMURL:   utmURL,
	}
	if coupon != "" {
		link.CouponCode = &coupon
	}

	created, err := u.utmRepo.Create(ctx, link)
	if err != nil {
		return model.UTMLink{}, Internal(err)
	}
	return created, nil
}

func (u *UTMUsecase) ListLinks(ctx context.Context, in ListUTMInput) ([]model.UTMLink, error) {
	if in.Offset < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid offset")
	}
	if in.Limit < 0 || in.Limit > 100 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	links, err := u.utmRepo.List(ctx, repo.UTMLinkFilter{
		ID:         in.ID,
		Source:     strings.TrimSpace(in.Source),
		CouponCode: strings.TrimSpace(in.CouponCode),
		Offset:     in.Offset,
		Limit:      in.Limit,
	})
	if err != nil {
		return nil, Internal(err)
	}
	return links, nil
}

// baseにutm_source/utm_medium/utm_campaign(/couponCode)を付ける。
// base側の既存クエリは残す
func BuildUTMURL(base, source, medium, campaign, couponCode string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", errInvalidBaseURL
	}

	params := []string{
		"utm_source=" + url.QueryEscape(source),
		"utm_medium=" + url.QueryEscape(medium),
		"utm_campaign=" + url.QueryEscape(campaign),
	}
	if couponCode != "" {
		params = append(params, "couponCode="+url.QueryEscape(couponCode))
	}

	if u.RawQuery != "" {
		params = append([]string{u.RawQuery}, params...)
	}
	u.RawQuery = strings.Join(params, "&")
	return u.String(), nil
}
