// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/rumbo-travel/rumbo/pkg/ux"
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	personalityLevel string // UX personality level (full/standard/minimal/machine)
	jsonOutput       bool   // print data as JSON, implies machine personality

	// groups search filters
	searchDestination string
	searchFrom        string
	searchTo          string
	searchSort        string
	searchPage        int
	searchSize        int

	// chat
	chatImageCaption string

	// notifications
	notifyUnreadOnly bool

	rootCmd = &cobra.Command{
		Use:   "rumbo",
		Short: "A cli to find travel companions and plan group trips",
		Long: `Rumbo is the terminal client for the Rumbo travel platform:
				search open travel groups, run your own, chat with your
				group and keep your profile up to date.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initApp(); err != nil {
				return err
			}
			// Initialize UX personality from flag, config, or environment
			switch {
			case jsonOutput:
				ux.SetPersonalityLevel(ux.PersonalityMachine)
			case personalityLevel != "":
				ux.SetPersonalityLevel(ux.ParsePersonalityLevel(personalityLevel))
			case app.Config.UX.Personality != "":
				ux.SetPersonalityLevel(ux.ParsePersonalityLevel(app.Config.UX.Personality))
			default:
				ux.InitPersonality()
			}
			return nil
		},
	}

	// --- Identity ---
	loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session locally",
		RunE:  runLogin, // Defined in cmd_auth.go
	}
	registerCmd = &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE:  runRegister, // Defined in cmd_auth.go
	}
	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored session",
		RunE:  runLogout, // Defined in cmd_auth.go
	}

	// --- Home ---
	homeCmd = &cobra.Command{
		Use:   "home",
		Short: "Show your session summary and suggested groups",
		RunE:  runHome, // Defined in cmd_home.go
	}

	// --- Groups ---
	groupsCmd = &cobra.Command{
		Use:     "groups",
		Short:   "Search, inspect and manage travel groups",
		Aliases: []string{"grupos", "g"},
	}
	groupsSearchCmd = &cobra.Command{
		Use:   "search",
		Short: "Search open groups by destination and dates",
		RunE:  runGroupsSearch, // Defined in cmd_groups.go
	}
	groupsShowCmd = &cobra.Command{
		Use:   "show [group-id]",
		Short: "Show a group's detail, itinerary and your permissions",
		Args:  cobra.ExactArgs(1),
		RunE:  runGroupsShow, // Defined in cmd_groups.go
	}
	groupsCreateCmd = &cobra.Command{
		Use:   "create",
		Short: "Create a new travel group (interactive wizard)",
		RunE:  runGroupsCreate, // Defined in cmd_groups.go
	}
	groupsEditCmd = &cobra.Command{
		Use:   "edit [group-id]",
		Short: "Edit one of your groups (interactive wizard)",
		Args:  cobra.ExactArgs(1),
		RunE:  runGroupsEdit, // Defined in cmd_groups.go
	}
	groupsJoinCmd = &cobra.Command{
		Use:   "join [group-id]",
		Short: "Request to join a group",
		Args:  cobra.ExactArgs(1),
		RunE:  runGroupsJoin, // Defined in cmd_groups.go
	}
	groupsLeaveCmd = &cobra.Command{
		Use:   "leave [group-id]",
		Short: "Leave a group you are a member of",
		Args:  cobra.ExactArgs(1),
		RunE:  runGroupsLeave, // Defined in cmd_groups.go
	}
	groupsCloseCmd = &cobra.Command{
		Use:   "close [group-id]",
		Short: "Close one of your groups to new members",
		Args:  cobra.ExactArgs(1),
		RunE:  runGroupsClose, // Defined in cmd_groups.go
	}
	groupsDeleteCmd = &cobra.Command{
		Use:   "delete [group-id]",
		Short: "DANGER: Delete one of your groups permanently",
		Args:  cobra.ExactArgs(1),
		RunE:  runGroupsDelete, // Defined in cmd_groups.go
	}

	// --- My trips ---
	tripsCmd = &cobra.Command{
		Use:     "trips",
		Short:   "List the groups you created, joined or closed",
		Aliases: []string{"mis-viajes"},
		RunE:    runTrips, // Defined in cmd_trips.go
	}
	tripsLeaveCmd = &cobra.Command{
		Use:   "leave [group-id]",
		Short: "Leave one of your joined trips",
		Args:  cobra.ExactArgs(1),
		RunE:  runTripsLeave, // Defined in cmd_trips.go
	}
	tripsDeleteCmd = &cobra.Command{
		Use:   "delete [group-id]",
		Short: "DANGER: Delete one of your created trips",
		Args:  cobra.ExactArgs(1),
		RunE:  runTripsDelete, // Defined in cmd_trips.go
	}

	// --- Chat ---
	chatCmd = &cobra.Command{
		Use:   "chat [group-id]",
		Short: "Open the live group chat",
		Args:  cobra.ExactArgs(1),
		RunE:  runChat, // Defined in cmd_chat.go
	}
	chatHistoryCmd = &cobra.Command{
		Use:   "history [group-id]",
		Short: "Print the group's message history",
		Args:  cobra.ExactArgs(1),
		RunE:  runChatHistory, // Defined in cmd_chat.go
	}
	chatSendCmd = &cobra.Command{
		Use:   "send [group-id] [message]",
		Short: "Send one message without opening the chat",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runChatSend, // Defined in cmd_chat.go
	}
	chatSendImageCmd = &cobra.Command{
		Use:   "send-image [group-id] [file]",
		Short: "Send an image to the group chat",
		Args:  cobra.ExactArgs(2),
		RunE:  runChatSendImage, // Defined in cmd_chat.go
	}
	chatDeleteCmd = &cobra.Command{
		Use:   "delete [group-id] [message-id]",
		Short: "Delete one of your chat messages",
		Args:  cobra.ExactArgs(2),
		RunE:  runChatDelete, // Defined in cmd_chat.go
	}

	// --- Notifications ---
	notificationsCmd = &cobra.Command{
		Use:     "notifications",
		Short:   "Manage your notification inbox",
		Aliases: []string{"notif", "n"},
		RunE:    runNotificationsList, // Defined in cmd_notifications.go
	}
	notificationsReadCmd = &cobra.Command{
		Use:   "read [notification-id]",
		Short: "Mark a notification as read",
		Args:  cobra.ExactArgs(1),
		RunE:  runNotificationsRead, // Defined in cmd_notifications.go
	}
	notificationsReadAllCmd = &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		RunE:  runNotificationsReadAll, // Defined in cmd_notifications.go
	}
	notificationsDeleteCmd = &cobra.Command{
		Use:   "delete [notification-id]",
		Short: "Delete a notification",
		Args:  cobra.ExactArgs(1),
		RunE:  runNotificationsDelete, // Defined in cmd_notifications.go
	}
	notificationsClearCmd = &cobra.Command{
		Use:   "clear",
		Short: "Delete every notification",
		RunE:  runNotificationsClear, // Defined in cmd_notifications.go
	}
	notificationsWatchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Stream notifications live until interrupted",
		RunE:  runNotificationsWatch, // Defined in cmd_notifications.go
	}

	// --- Profile ---
	profileCmd = &cobra.Command{
		Use:   "profile [user-id]",
		Short: "Show your profile, or another traveller's",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runProfileShow, // Defined in cmd_profile.go
	}
	profileEditCmd = &cobra.Command{
		Use:   "edit",
		Short: "Update your profile details",
		RunE:  runProfileEdit, // Defined in cmd_profile.go
	}
	profileAvatarCmd = &cobra.Command{
		Use:   "avatar [file]",
		Short: "Upload a new profile picture",
		Args:  cobra.ExactArgs(1),
		RunE:  runProfileAvatar, // Defined in cmd_profile.go
	}
	profileCoverCmd = &cobra.Command{
		Use:   "cover [file]",
		Short: "Upload a new cover picture",
		Args:  cobra.ExactArgs(1),
		RunE:  runProfileCover, // Defined in cmd_profile.go
	}

	// --- Join requests ---
	requestsCmd = &cobra.Command{
		Use:   "requests [group-id]",
		Short: "List pending join requests for one of your groups",
		Args:  cobra.ExactArgs(1),
		RunE:  runRequestsList, // Defined in cmd_requests.go
	}
	requestsAcceptCmd = &cobra.Command{
		Use:   "accept [group-id] [user-id]",
		Short: "Accept a join request",
		Args:  cobra.ExactArgs(2),
		RunE:  runRequestsAccept, // Defined in cmd_requests.go
	}
	requestsRejectCmd = &cobra.Command{
		Use:   "reject [group-id] [user-id]",
		Short: "Reject a join request",
		Args:  cobra.ExactArgs(2),
		RunE:  runRequestsReject, // Defined in cmd_requests.go
	}

	// --- Ratings ---
	rateCmd = &cobra.Command{
		Use:     "rate [group-id]",
		Short:   "Rate your co-travelers after a trip closes",
		Aliases: []string{"calificar"},
		Args:    cobra.ExactArgs(1),
		RunE:    runRate, // Defined in cmd_rate.go
	}

	// --- Testimonials ---
	testimonialsCmd = &cobra.Command{
		Use:     "testimonials",
		Short:   "Read and write platform testimonials",
		Aliases: []string{"testimonios"},
		RunE:    runTestimonialsFeatured, // Defined in cmd_testimonials.go
	}
	testimonialsCreateCmd = &cobra.Command{
		Use:   "create [text]",
		Short: "Leave a testimonial with a 1-5 rating",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runTestimonialsCreate, // Defined in cmd_testimonials.go
	}
	testimonialsPendingCmd = &cobra.Command{
		Use:   "pending",
		Short: "List testimonials awaiting moderation (admin)",
		RunE:  runTestimonialsPending, // Defined in cmd_testimonials.go
	}
	testimonialsApproveCmd = &cobra.Command{
		Use:   "approve [testimonial-id]",
		Short: "Approve a pending testimonial (admin)",
		Args:  cobra.ExactArgs(1),
		RunE:  runTestimonialsApprove, // Defined in cmd_testimonials.go
	}
	testimonialsFeatureCmd = &cobra.Command{
		Use:   "feature [testimonial-id]",
		Short: "Toggle a testimonial's featured flag (admin)",
		Args:  cobra.ExactArgs(1),
		RunE:  runTestimonialsFeature, // Defined in cmd_testimonials.go
	}
	testimonialsDeleteCmd = &cobra.Command{
		Use:   "delete [testimonial-id]",
		Short: "Delete a testimonial (admin)",
		Args:  cobra.ExactArgs(1),
		RunE:  runTestimonialsDelete, // Defined in cmd_testimonials.go
	}

	// --- Misc ---
	supportCmd = &cobra.Command{
		Use:   "support",
		Short: "How to reach the Rumbo team",
		RunE:  runSupport, // Defined in cmd_support.go
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the client version",
		Run:   runVersion, // Defined in cmd_version.go
	}
)

// init runs when the Go program starts
func init() {
	// Global UX personality flag
	rootCmd.PersistentFlags().StringVar(&personalityLevel, "personality", "",
		"Output style: full (default, rich), standard, minimal, or machine (scripting)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Print results as JSON (implies --personality machine)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)

	rootCmd.AddCommand(homeCmd)

	rootCmd.AddCommand(groupsCmd)
	groupsCmd.AddCommand(groupsSearchCmd)
	groupsSearchCmd.Flags().StringVar(&searchDestination, "destination", "", "Filter by main destination")
	groupsSearchCmd.Flags().StringVar(&searchFrom, "from", "", "Earliest start date (YYYY-MM-DD)")
	groupsSearchCmd.Flags().StringVar(&searchTo, "to", "", "Latest end date (YYYY-MM-DD)")
	groupsSearchCmd.Flags().StringVar(&searchSort, "sort", "", "Sort order (e.g. fechaInicio,asc)")
	groupsSearchCmd.Flags().IntVar(&searchPage, "page", 0, "Result page, starting at 0")
	groupsSearchCmd.Flags().IntVar(&searchSize, "size", 12, "Results per page")
	groupsCmd.AddCommand(groupsShowCmd)
	groupsCmd.AddCommand(groupsCreateCmd)
	groupsCmd.AddCommand(groupsEditCmd)
	groupsCmd.AddCommand(groupsJoinCmd)
	groupsCmd.AddCommand(groupsLeaveCmd)
	groupsCmd.AddCommand(groupsCloseCmd)
	groupsCmd.AddCommand(groupsDeleteCmd)

	rootCmd.AddCommand(tripsCmd)
	tripsCmd.AddCommand(tripsLeaveCmd)
	tripsCmd.AddCommand(tripsDeleteCmd)

	rootCmd.AddCommand(chatCmd)
	chatCmd.AddCommand(chatHistoryCmd)
	chatCmd.AddCommand(chatSendCmd)
	chatCmd.AddCommand(chatSendImageCmd)
	chatSendImageCmd.Flags().StringVar(&chatImageCaption, "caption", "", "Optional image caption")
	chatCmd.AddCommand(chatDeleteCmd)

	rootCmd.AddCommand(notificationsCmd)
	notificationsCmd.Flags().BoolVar(&notifyUnreadOnly, "unread", false, "Only unread notifications")
	notificationsCmd.AddCommand(notificationsReadCmd)
	notificationsCmd.AddCommand(notificationsReadAllCmd)
	notificationsCmd.AddCommand(notificationsDeleteCmd)
	notificationsCmd.AddCommand(notificationsClearCmd)
	notificationsCmd.AddCommand(notificationsWatchCmd)

	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileEditCmd)
	profileCmd.AddCommand(profileAvatarCmd)
	profileCmd.AddCommand(profileCoverCmd)

	rootCmd.AddCommand(requestsCmd)
	requestsCmd.AddCommand(requestsAcceptCmd)
	requestsCmd.AddCommand(requestsRejectCmd)

	rootCmd.AddCommand(rateCmd)

	rootCmd.AddCommand(testimonialsCmd)
	testimonialsCmd.AddCommand(testimonialsCreateCmd)
	testimonialsCmd.AddCommand(testimonialsPendingCmd)
	testimonialsCmd.AddCommand(testimonialsApproveCmd)
	testimonialsCmd.AddCommand(testimonialsFeatureCmd)
	testimonialsCmd.AddCommand(testimonialsDeleteCmd)

	rootCmd.AddCommand(supportCmd)
	rootCmd.AddCommand(versionCmd)
}
