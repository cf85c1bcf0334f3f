package domain

// Boundary condition flags: 2 bits of state for each of the 6 hexahedral
// faces, 12 bits total. A face on the low global boundary reflects (SYMM),
// on the high global boundary it is open (FREE), and on an interior rank
// boundary it exchanges halo data (COMM). Interior faces carry no flag.
const (
	XiMSymm = 0x00001
	XiMFree = 0x00002
	XiMComm = 0x00004
	XiM     = 0x00007

	XiPSymm = 0x00008
	XiPFree = 0x00010
	XiPComm = 0x00020
	XiP     = 0x00038

	EtaMSymm = 0x00040
	EtaMFree = 0x00080
	EtaMComm = 0x00100
	EtaM     = 0x001c0

	EtaPSymm = 0x00200
	EtaPFree = 0x00400
	EtaPComm = 0x00800
	EtaP     = 0x00e00

	ZetaMSymm = 0x01000
	ZetaMFree = 0x02000
	ZetaMComm = 0x04000
	ZetaM     = 0x07000

	ZetaPSymm = 0x08000
	ZetaPFree = 0x10000
	ZetaPComm = 0x20000
	ZetaP     = 0x38000
)
