package board

// MagicVersion identifies the committed magic dataset. Bump it whenever
// magicNumbers is regenerated with cmd/magicgen.
const MagicVersion = 1

// magicNumbers holds one multiplier per family and square, indexed
// [Family][Square]. Each is collision-free for the full relevant bit count
// of its square; tables are derived from them at init.
var magicNumbers = [2][64]uint64{
	RookFamily: {
		0x0080004000802010, 0x2840004010002000, 0x0880081000200080, 0x4080100004080080,
		0x0200201009040200, 0x1300010002088400, 0x2080008002000100, 0xc200010e02288244,
		0x100880084000802a, 0x0190802008844000, 0x8180801000200080, 0x0400808008001000,
		0xc040800400080081, 0x6106001002002408, 0x3015001100020044, 0xc001002082004100,
		0x410020800c400480, 0x0720008040002080, 0x0830420010802200, 0x00348900100101a0,
		0x1008008008800400, 0x2080808002000400, 0x2000040010028801, 0x0c44020000840041,
		0x2400400080008024, 0x90601000c0002044, 0x0980a00280100088, 0x01b0090100100220,
		0x8010040080080081, 0x040a008080020400, 0x0311100400020801, 0x4128008200106401,
		0x8840004032800080, 0x4810400881002100, 0x0050080400200020, 0x8020801000800800,
		0x0000510005000800, 0x4400020080800400, 0x0004900824002201, 0x0004010042000084,
		0x8080004020004007, 0x0200200050004004, 0x0240200010008080, 0x0000080010008080,
		0x8398040008008080, 0x02020008144a0010, 0x0000010002008080, 0x100201028542000c,
		0x0804208500420200, 0x0004208842010200, 0x002ea00081100080, 0x0010000810210100,
		0x8008004200040040, 0xc00200c418301200, 0x0200083201100c00, 0x1980288110440600,
		0x0801005423800041, 0x1902008825001042, 0x41086000c3009019, 0xa400100100042009,
		0x200a002010040802, 0x010100a400080241, 0x400016100803028c, 0x4800040104d2a082,
	},
	BishopFamily: {
		0x4020081085240020, 0x04041820840088c0, 0x4004050423018200, 0x1002208202000012,
		0x00240420020e0282, 0x0082080404c08200, 0x0012050413401040, 0x0801084044044002,
		0x0408900230091208, 0x00081401ca020200, 0x0488042102320002, 0x8400824087001400,
		0x0040020210034004, 0x0080010108430001, 0x0000040161082001, 0x11200202088e8820,
		0x0011202012108106, 0x601a00a086ac0102, 0x0008501004420420, 0x0a84080824021000,
		0x0004101202020880, 0x002081430143400c, 0x0004080482011080, 0x014a080040440440,
		0x00024000a0848400, 0x0051102420020240, 0x0600820820480102, 0x0802040002010a00,
		0x1008840020802000, 0x2009020255005120, 0x4200a41040820808, 0x2002020090308200,
		0x0010022070100400, 0x10180c2408100120, 0x0400260100080804, 0x1401020080080080,
		0x0020081004084040, 0x8090020422021000, 0x8088016440040600, 0xa0d10c01a8030110,
		0x1008021012800400, 0x80240a0804146220, 0x000020e0b0000800, 0x0001002018018108,
		0x0041481034000340, 0x0004040812490200, 0x000470209600010c, 0x0288490712018228,
		0x08408c1120100808, 0x0000860286200020, 0x104a021215040100, 0x0000400c20a80440,
		0x4020641020220021, 0x2100850408020000, 0x0046101408088048, 0x0610010240860000,
		0x0022004402082301, 0x0400020890880802, 0x02000a020104a807, 0xd00410011c420202,
		0x0090280020202480, 0x840504c102144109, 0x000a24108a0a0c0a, 0x0884200202003100,
	},
}
