package models

type Permission struct {
	ID          string  `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description,omitempty" db:"description"`
}

// Menu and feature identifiers used as permission ids.
const (
	PermDashboard      = "Dashboard"
	PermDataSiswa      = "Data Siswa"
	PermDataTutor      = "Data Tutor"
	PermMataPelajaran  = "Mata Pelajaran"
	PermUjianTugas     = "Ujian & Tugas"
	PermLaporan        = "Laporan"
	PermProfilPKBM     = "Profil PKBM"
	PermUserManagement = "User Management"
)
