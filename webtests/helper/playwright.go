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

// Package helper runs playwright WebUI tests against a provisioned portal
package helper

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sync"
	"testing"

	"github.com/playwright-community/playwright-go"

	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/config"
)

// DSPlaywright saves the browser state for a particular webtest
type DSPlaywright struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page

	captureDir  string
	browserName string
	browserType playwright.BrowserType

	// Automatic step screenshoting
	stepMu sync.Mutex
	step   int
}

// DefaultContextOptions for most webtests
var DefaultContextOptions = playwright.BrowserNewContextOptions{
	AcceptDownloads: playwright.Bool(true),
	Viewport: &playwright.Size{
		Width:  1280,
		Height: 720,
	},
}

// NewPlaywright initializes the browser helper and returns the first page
func NewPlaywright(tb testing.TB, cfg *config.Config, options playwright.BrowserNewContextOptions) (*DSPlaywright, playwright.Page) {
	var err error
	dsp := &DSPlaywright{
		captureDir:  filepath.Join(cfg.ArtifactsDir, "playwright"),
		browserName: cfg.Browser,
	}

	dsp.pw, err = playwright.Run()
	if err != nil {
		tb.Fatalf("ERROR: Could not start Playwright: %v", err)
	}

	switch dsp.browserName {
	case "firefox":
		dsp.browserType = dsp.pw.Firefox
	case "webkit":
		dsp.browserType = dsp.pw.WebKit
	default:
		dsp.browserType = dsp.pw.Chromium
	}

	dsp.browser, err = dsp.browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(!cfg.Headful),
	})
	if err != nil {
		tb.Fatalf("ERROR: Could not launch browser: %v", err)
	}

	tb.Cleanup(func() {
		if err := dsp.browser.Close(); err != nil {
			tb.Errorf("ERROR: Could not close browser: %v", err)
		}
		if err := dsp.pw.Stop(); err != nil {
			tb.Errorf("ERROR: Could not stop Playwright: %v", err)
		}
		dsp.Cleanup(tb)
	})

	dsp.newBrowserContext(tb, options)
	dsp.page = dsp.newPage(tb)

	return dsp, dsp.page
}

// Run wraps a subtest with start/end screenshots
func (dsp *DSPlaywright) Run(t *testing.T, name string, fn func(t *testing.T)) {
	t.Helper()

	t.Run(name, func(t *testing.T) {
		dsp.Screenshot(t, "start")
		defer dsp.Screenshot(t, "end")

		fn(t)
	})
}

// Screenshot takes a screenshot with automatic step naming
func (dsp *DSPlaywright) Screenshot(t *testing.T, phase string) {
	dsp.stepMu.Lock()
	defer dsp.stepMu.Unlock()

	dsp.step++

	filename := fmt.Sprintf("%02d-%s-%s.png", dsp.step, path.Base(t.Name()), phase)

	if _, err := dsp.page.Screenshot(playwright.PageScreenshotOptions{
		Path: playwright.String(dsp.CaptureDir("screenshots", filename)),
	}); err != nil {
		t.Logf("WARNING: Could not take screenshot %s: %v", filename, err)
	}
}

func (dsp *DSPlaywright) newPage(tb testing.TB) playwright.Page {
	page, err := dsp.context.NewPage()
	if err != nil {
		tb.Fatalf("ERROR: Could not create page: %v", err)
	}
	return page
}

// CaptureDir returns the directory to store the test captures in
func (dsp *DSPlaywright) CaptureDir(path ...string) string {
	paths := append([]string{dsp.captureDir}, path...)
	out := filepath.Join(paths...)
	os.MkdirAll(filepath.Dir(out), 0755)
	return out
}

// Cleanup removes the captures unless the test failed
func (dsp *DSPlaywright) Cleanup(tb testing.TB) {
	tb.Helper()

	if tb.Failed() {
		tb.Log("INFO: Keeping captures for checking:", dsp.captureDir)
		return
	}
	os.RemoveAll(dsp.captureDir)
}

func (dsp *DSPlaywright) newBrowserContext(tb testing.TB, options playwright.BrowserNewContextOptions) {
	tb.Helper()

	options.IgnoreHttpsErrors = playwright.Bool(true)
	options.RecordVideo = &playwright.RecordVideo{
		Dir: dsp.CaptureDir("video"),
	}

	var err error
	if dsp.context, err = dsp.browser.NewContext(options); err != nil {
		tb.Fatalf("ERROR: Could not create new context: %v", err)
	}
	// portal pages are heavy, navigation needs a generous timeout
	dsp.context.SetDefaultTimeout(30000)
	dsp.context.SetDefaultNavigationTimeout(60000)

	tb.Cleanup(func() {
		if err := dsp.context.Close(); err != nil {
			tb.Errorf("ERROR: Could not close context: %v", err)
		}
	})
}
