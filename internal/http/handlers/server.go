package handlers

import (
	"github.com/rogerio-castellano/asset-dashboard/internal/client"
	"github.com/rogerio-castellano/asset-dashboard/internal/dashboard"
	"github.com/rogerio-castellano/asset-dashboard/internal/notify"
	"github.com/rogerio-castellano/asset-dashboard/internal/repo"
)

var (
	session  *dashboard.Session
	resolver *dashboard.Resolver
	prefRepo repo.PreferenceRepository
	notifier *notify.Notifier
	api      *client.Client
)

func SetSession(s *dashboard.Session) {
	session = s
}

func SetResolver(r *dashboard.Resolver) {
	resolver = r
}

func SetPreferenceRepo(r repo.PreferenceRepository) {
	prefRepo = r
}

func SetNotifier(n *notify.Notifier) {
	notifier = n
}

func SetAPIClient(c *client.Client) {
	api = c
}
