package taskflowsdk

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) Businesses(ctx context.Context) ([]Business, error) {
	var out BusinessesResponse
	if err := c.do(ctx, http.MethodGet, "/api/businesses", nil, &out); err != nil {
		return nil, err
	}
	return out.Businesses, nil
}

// AllBusinesses lists every business. System admins only.
func (c *Client) AllBusinesses(ctx context.Context) ([]Business, error) {
	var out BusinessesResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/businesses", nil, &out); err != nil {
		return nil, err
	}
	return out.Businesses, nil
}

func (c *Client) Members(ctx context.Context, businessID string) ([]Member, error) {
	var out MembersResponse
	if err := c.do(ctx, http.MethodGet, "/api/businesses/"+url.PathEscape(businessID)+"/members", nil, &out); err != nil {
		return nil, err
	}
	return out.Members, nil
}

func (c *Client) UpdateMemberRole(ctx context.Context, businessID, userID, role string) error {
	path := "/api/businesses/" + url.PathEscape(businessID) + "/members/" + url.PathEscape(userID)
	return c.do(ctx, http.MethodPatch, path, UpdateMemberRequest{Role: role}, nil)
}

func (c *Client) RemoveMember(ctx context.Context, businessID, userID string) error {
	path := "/api/businesses/" + url.PathEscape(businessID) + "/members/" + url.PathEscape(userID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// Invite emails an invitation. Owners and admins only.
func (c *Client) Invite(ctx context.Context, businessID, email, role string) (*Invitation, error) {
	var out InviteResponse
	path := "/api/businesses/" + url.PathEscape(businessID) + "/invitations"
	if err := c.do(ctx, http.MethodPost, path, InviteRequest{Email: email, Role: role}, &out); err != nil {
		return nil, err
	}
	return &out.Invitation, nil
}

func (c *Client) PreviewInvitation(ctx context.Context, token string) (*InvitationPreviewResponse, error) {
	var out InvitationPreviewResponse
	if err := c.do(ctx, http.MethodGet, "/api/invitations/"+url.PathEscape(token), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AcceptInvitation joins the business and signs in as the invitee.
func (c *Client) AcceptInvitation(ctx context.Context, req AcceptInvitationRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/invitations/accept", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
