// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package api

import "github.com/rumbo-travel/rumbo/pkg/session"

// Wire models for the travel-group backend. JSON names follow the
// backend's Spanish contract; Go names are the English domain terms.
// Every response type is shape-checked after decode (see Client.decode),
// so the `validate` tags here define what a well-formed response must
// carry.

// Group is a travel group as returned by the groups resource.
type Group struct {
	ID                int           `json:"idGrupo" validate:"required"`
	TripName          string        `json:"nombreViaje" validate:"required"`
	MaxParticipants   int           `json:"maxParticipantes"`
	Status            string        `json:"estado"`
	Trip              *TripInfo     `json:"viaje,omitempty"`
	Creator           *Creator      `json:"creador,omitempty"`
	Participants      []Participant `json:"participantes,omitempty"`
	TotalParticipants int           `json:"totalParticipantes"`
	Tags              []string      `json:"etiquetas,omitempty"`
	CreatedAt         string        `json:"fechaCreacion,omitempty"`
}

// TripInfo carries the trip metadata nested in a group.
type TripInfo struct {
	ID            int    `json:"idViaje"`
	Destination   string `json:"destinoPrincipal"`
	StartDate     string `json:"fechaInicio"`
	EndDate       string `json:"fechaFin"`
	Description   string `json:"descripcion"`
	MeetingPoint  string `json:"puntoEncuentro,omitempty"`
	MinAge        int    `json:"rangoEdadMin,omitempty"`
	MaxAge        int    `json:"rangoEdadMax,omitempty"`
	Verified      bool   `json:"esVerificado,omitempty"`
	FeaturedImage string `json:"imagenDestacada,omitempty"`
}

// Creator identifies the user who opened a group.
type Creator struct {
	UserID   int    `json:"idUsuario" validate:"required"`
	FullName string `json:"nombreCompleto"`
	Avatar   string `json:"fotoPerfil,omitempty"`
	Initials string `json:"iniciales,omitempty"`
}

// Participant is an accepted group member.
type Participant struct {
	UserID   int    `json:"idUsuario" validate:"required"`
	FullName string `json:"nombreCompleto"`
	Avatar   string `json:"fotoPerfil,omitempty"`
	Initials string `json:"iniciales,omitempty"`
}

// GroupsPage is one page of group search results.
type GroupsPage struct {
	Groups        []Group `json:"grupos"`
	TotalPages    int     `json:"totalPages"`
	TotalElements int     `json:"totalElements"`
	CurrentPage   int     `json:"currentPage"`
	Size          int     `json:"size"`
}

// ItineraryEntry is one stored itinerary day of a trip.
type ItineraryEntry struct {
	ID             int    `json:"idItinerario"`
	DayNumber      int    `json:"diaNumero" validate:"required"`
	Title          string `json:"titulo"`
	Description    string `json:"descripcion"`
	Duration       string `json:"duracionEstimada,omitempty"`
	DeparturePoint string `json:"puntoPartida,omitempty"`
	ArrivalPoint   string `json:"puntoLlegada,omitempty"`
}

// GroupDetail is the full view of a single group.
type GroupDetail struct {
	Group           Group            `json:"grupo" validate:"required"`
	Itinerary       []ItineraryEntry `json:"itinerarios"`
	AcceptedMembers int              `json:"participantesAceptados"`
	TotalMembers    int              `json:"totalMiembros"`
}

// Permissions describes what the current user may do within a group.
type Permissions struct {
	IsCreator      bool `json:"esCreador"`
	IsMember       bool `json:"esParticipante"`
	CanJoin        bool `json:"puedeUnirse"`
	PendingRequest bool `json:"solicitudPendiente"`
}

// GroupPayload is the create/update body for a group, mirroring the
// wizard's normalized output.
type GroupPayload struct {
	TripName        string         `json:"nombreViaje"`
	Destination     string         `json:"destinoPrincipal"`
	StartDate       string         `json:"fechaInicio"`
	EndDate         string         `json:"fechaFin"`
	Description     string         `json:"descripcion"`
	MeetingPoint    string         `json:"puntoEncuentro"`
	FeaturedImage   string         `json:"imagenDestacada"`
	MinAge          int            `json:"rangoEdadMin"`
	MaxAge          int            `json:"rangoEdadMax"`
	MaxParticipants int            `json:"maxParticipantes"`
	Tags            []string       `json:"etiquetas"`
	Itinerary       []ItineraryDay `json:"diasItinerario"`
}

// ItineraryDay is one submitted itinerary day in a GroupPayload.
type ItineraryDay struct {
	DayNumber      int    `json:"diaNumero"`
	Title          string `json:"titulo"`
	Description    string `json:"descripcion"`
	Duration       string `json:"duracionEstimada,omitempty"`
	DeparturePoint string `json:"puntoPartida,omitempty"`
	ArrivalPoint   string `json:"puntoLlegada,omitempty"`
}

// MyTrips buckets the caller's groups by relationship.
type MyTrips struct {
	Created []Group `json:"gruposCreados"`
	Joined  []Group `json:"gruposUnidos"`
	Closed  []Group `json:"gruposCerrados"`
	Total   int     `json:"totalGrupos"`
}

// HomeData is the session/display payload for the home view. It is
// served for authenticated and anonymous callers alike.
type HomeData struct {
	UserID              int    `json:"idUsuario"`
	Initials            string `json:"iniciales"`
	Username            string `json:"username"`
	Email               string `json:"email"`
	AvatarImage         string `json:"imagenPerfil"`
	CoverImage          string `json:"imagenPortada"`
	UnreadNotifications int    `json:"notificacionesNoLeidas"`
	Authenticated       bool   `json:"authenticated"`
}

// ChatMessage is one group chat message.
type ChatMessage struct {
	ID       int    `json:"idMensaje" validate:"required"`
	GroupID  int    `json:"idGrupo"`
	SenderID int    `json:"idUsuario"`
	Sender   string `json:"nombreCompleto"`
	Text     string `json:"mensaje"`
	ImageURL string `json:"imagen,omitempty"`
	SentAt   string `json:"fecha"`
}

// Notification is one inbox entry.
type Notification struct {
	ID      int    `json:"idNotificacion" validate:"required"`
	Kind    string `json:"tipo"`
	Content string `json:"contenido"`
	Read    bool   `json:"leido"`
	Date    string `json:"fecha"`
	ReadAt  string `json:"fechaLectura,omitempty"`
	Group   *struct {
		ID       int    `json:"idGrupo"`
		TripName string `json:"nombreViaje"`
	} `json:"grupo,omitempty"`
	Requester *struct {
		UserID   int    `json:"idUsuario"`
		FullName string `json:"nombreCompleto"`
		Avatar   string `json:"fotoPerfil,omitempty"`
	} `json:"solicitante,omitempty"`
}

// NotificationsPage is the inbox listing shape.
type NotificationsPage struct {
	Notifications []Notification `json:"notificaciones"`
	Total         int            `json:"total"`
	Unread        int            `json:"noLeidas"`
}

// JoinRequest is one pending membership request.
type JoinRequest struct {
	UserID      int    `json:"idUsuario" validate:"required"`
	FullName    string `json:"nombreCompleto"`
	Email       string `json:"email"`
	Avatar      string `json:"fotoPerfil,omitempty"`
	Initials    string `json:"iniciales,omitempty"`
	RequestedAt string `json:"fechaSolicitud"`
	Attempts    int    `json:"intentos"`
}

// JoinRequestsPage lists pending requests for a group.
type JoinRequestsPage struct {
	Requests []JoinRequest `json:"solicitudes"`
	Total    int           `json:"total"`
}

// Profile is a user profile, own or foreign.
type Profile struct {
	UserID         int    `json:"idUsuario" validate:"required"`
	FirstName      string `json:"nombre"`
	LastName       string `json:"apellidos"`
	Username       string `json:"username"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"telefono,omitempty"`
	City           string `json:"ciudad"`
	Country        string `json:"pais"`
	Age            int    `json:"edad,omitempty"`
	Bio            string `json:"biografia,omitempty"`
	AvatarImage    string `json:"imagenPerfil,omitempty"`
	CoverImage     string `json:"imagenPortada,omitempty"`
	MemberSince    string `json:"fechaRegistroFormateada"`
	Initials       string `json:"iniciales"`
	IsOwnProfile   bool   `json:"esPerfilPropio"`
	CompletedTrips int    `json:"viajesCompletados"`
	TotalReviews   int    `json:"totalResenas"`
	AvgRating      string `json:"promedioCalificaciones"`
	TotalBadges    int    `json:"totalLogros"`
	Verified       bool   `json:"verificado"`

	RecentReviews []Review      `json:"resenasRecientes"`
	Badges        []Achievement `json:"logros"`
	UpcomingTrips []ProfileTrip `json:"proximosViajes"`
	PastTrips     []ProfileTrip `json:"historialViajes"`
}

// Review is a co-traveler rating shown on a profile.
type Review struct {
	ID      int    `json:"idResena"`
	Comment string `json:"comentario,omitempty"`
	Rating  int    `json:"calificacion"`
	Date    string `json:"fecha"`
	Author  struct {
		UserID   int    `json:"idUsuario"`
		FullName string `json:"nombre"`
		Avatar   string `json:"fotoPerfil,omitempty"`
		Initials string `json:"iniciales,omitempty"`
	} `json:"autor"`
	Group struct {
		ID       int    `json:"idGrupo"`
		TripName string `json:"nombreViaje"`
	} `json:"grupo"`
}

// PendingRatings is the rating sheet for a closed trip.
type PendingRatings struct {
	Group        Group         `json:"grupo"`
	AlreadyRated int           `json:"yaCalificados"`
	Pending      []RatablePeer `json:"participantesParaCalificar"`
}

// RatablePeer is a co-traveler the current user has not rated yet.
type RatablePeer struct {
	UserID   int    `json:"idUsuario" validate:"required"`
	FullName string `json:"nombreCompleto"`
	Avatar   string `json:"fotoPerfil,omitempty"`
	Initials string `json:"iniciales,omitempty"`
}

// RatingInput is one submitted score. The backend rejects scores
// outside 1-5.
type RatingInput struct {
	UserID  int    `json:"idUsuario"`
	Rating  int    `json:"calificacion"`
	Comment string `json:"comentario"`
}

// Achievement is a profile badge.
type Achievement struct {
	ID        int    `json:"idLogro"`
	Name      string `json:"nombre"`
	Detail    string `json:"descripcion"`
	Icon      string `json:"icono"`
	AwardedAt string `json:"fechaOtorgado"`
}

// ProfileTrip is a compact trip reference on a profile.
type ProfileTrip struct {
	GroupID       int    `json:"idGrupo"`
	TripName      string `json:"nombreViaje"`
	Status        string `json:"estado"`
	Destination   string `json:"destinoPrincipal,omitempty"`
	FeaturedImage string `json:"imagenDestacada,omitempty"`
	StartDate     string `json:"fechaInicio,omitempty"`
	EndDate       string `json:"fechaFin,omitempty"`
}

// ProfileUpdate is the editable subset of a profile.
type ProfileUpdate struct {
	FirstName string `json:"nombre,omitempty"`
	LastName  string `json:"apellidos,omitempty"`
	Phone     string `json:"telefono,omitempty"`
	City      string `json:"ciudad,omitempty"`
	Country   string `json:"pais,omitempty"`
	Bio       string `json:"biografia,omitempty"`
}

// Testimonial is a platform rating, possibly anonymous.
type Testimonial struct {
	ID            int    `json:"idTestimonio,omitempty"`
	Comment       string `json:"comentario" validate:"required"`
	Rating        int    `json:"calificacion"`
	Anonymous     bool   `json:"anonimo"`
	AuthorFirst   string `json:"nombreAutor,omitempty"`
	AuthorLast    string `json:"apellidoAutor,omitempty"`
	AuthorCity    string `json:"ciudadAutor,omitempty"`
	AuthorCountry string `json:"paisAutor,omitempty"`
	AuthorAvatar  string `json:"fotoPerfilAutor,omitempty"`
	Date          string `json:"fecha,omitempty"`
	Approved      bool   `json:"aprobado,omitempty"`
	Featured      bool   `json:"destacado,omitempty"`
	GroupID       int    `json:"idGrupo,omitempty"`
}

// TestimonialInput creates a new testimonial.
type TestimonialInput struct {
	Comment   string `json:"comentario"`
	Rating    int    `json:"calificacion"`
	Anonymous bool   `json:"anonimo"`
	GroupID   int    `json:"idGrupo,omitempty"`
}

// Credentials is the login request body. Username may be an email or a
// phone number; the backend resolves it.
type Credentials struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe,omitempty"`
}

// Registration is the sign-up request body.
type Registration struct {
	FirstName       string `json:"nombre"`
	LastName        string `json:"apellido"`
	Username        string `json:"nombreUsuario"`
	Email           string `json:"email"`
	Phone           string `json:"telefono"`
	Password        string `json:"contrasena"`
	ConfirmPassword string `json:"confirmContrasena"`
	Country         string `json:"pais"`
	City            string `json:"ciudad"`
	BirthDate       string `json:"fechaNacimiento"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Token string        `json:"token" validate:"required"`
	Type  string        `json:"tipo"`
	User  *session.User `json:"usuario" validate:"required"`
}

// Availability answers the username/email availability checks.
type Availability struct {
	Available bool `json:"available"`
}

// StatusMessage is the generic mutation acknowledgement shape.
type StatusMessage struct {
	Message string `json:"mensaje,omitempty"`
	Error   string `json:"error,omitempty"`
}
