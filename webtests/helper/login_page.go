/**
 * Copyright Ascensio System SIA 2026. All rights reserved.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License. You may obtain a copy
 * of the License at http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under
 * the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR REPRESENTATIONS
 * OF ANY KIND, either express or implied. See the License for the specific language
 * governing permissions and limitations under the License.
 */

package helper

import (
	"testing"

	"github.com/playwright-community/playwright-go"

	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/types"
)

// LoginPage drives the portal sign-in form
type LoginPage struct {
	page    playwright.Page
	baseURL string
}

// NewLoginPage binds the page object to a portal
func NewLoginPage(page playwright.Page, baseURL string) *LoginPage {
	return &LoginPage{page: page, baseURL: baseURL}
}

// Open navigates to the sign-in form
func (l *LoginPage) Open(tb testing.TB) {
	tb.Helper()

	if _, err := l.page.Goto(l.baseURL+"/login", playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	}); err != nil {
		tb.Fatalf("ERROR: Could not open login page: %v", err)
	}
}

// SignIn fills the form and submits it
func (l *LoginPage) SignIn(tb testing.TB, creds types.Credentials) {
	tb.Helper()

	if err := l.page.Locator("#login_username").Fill(creds.Email); err != nil {
		tb.Fatalf("ERROR: Could not fill email: %v", err)
	}
	if err := l.page.Locator("#login_password").Fill(creds.Password); err != nil {
		tb.Fatalf("ERROR: Could not fill password: %v", err)
	}
	if err := l.page.Locator("#login_submit").Click(); err != nil {
		tb.Fatalf("ERROR: Could not submit login form: %v", err)
	}
}

// WaitLoggedIn waits until the rooms list of the portal becomes visible
func (l *LoginPage) WaitLoggedIn(tb testing.TB) {
	tb.Helper()

	if err := l.page.Locator("[data-testid='rooms-list'], #sectionScroll").First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(60000),
	}); err != nil {
		tb.Fatalf("ERROR: Portal home did not appear after login: %v", err)
	}
}
